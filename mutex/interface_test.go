package mutex

import (
	"errors"
	"testing"
)

func TestWithLock(t *testing.T) {
	t.Run("runs task under lock", func(t *testing.T) {
		m, _, _ := newTracked(t)

		err := WithLock(m, func() error {
			if m.mu.TryLock() {
				t.Error("mutex should be held while task runs")
			}
			return nil
		})
		if err != nil {
			t.Errorf("WithLock() error = %v", err)
		}
		if err := m.Close(); err != nil {
			t.Errorf("Close() after WithLock() error = %v", err)
		}
	})

	t.Run("task error is returned and lock released", func(t *testing.T) {
		m, _, _ := newTracked(t)
		taskErr := errors.New("task failed")

		if err := WithLock(m, func() error { return taskErr }); !errors.Is(err, taskErr) {
			t.Errorf("WithLock() error = %v, want %v", err, taskErr)
		}
		if err := m.Close(); err != nil {
			t.Errorf("Close() error = %v, lock should have been released", err)
		}
	})

	t.Run("lock failure skips task", func(t *testing.T) {
		m, _, _ := newTracked(t)
		_ = m.Lock()
		defer m.Unlock()

		ran := false
		err := WithLock(m, func() error { ran = true; return nil })
		if !errors.Is(err, ErrDeadlock) {
			t.Errorf("WithLock() error = %v, want %v", err, ErrDeadlock)
		}
		if ran {
			t.Error("task should not run when Lock() fails")
		}
	})

	t.Run("unlock failure is joined", func(t *testing.T) {
		m, _, _ := newTracked(t)
		taskErr := errors.New("task failed")

		// The task releases the lock itself, so the deferred unlock fails
		err := WithLock(m, func() error {
			_ = m.Unlock()
			return taskErr
		})
		if !errors.Is(err, taskErr) || !errors.Is(err, ErrNotOwner) {
			t.Errorf("WithLock() error = %v, want both %v and %v", err, taskErr, ErrNotOwner)
		}
	})

	t.Run("nil mutex", func(t *testing.T) {
		var m *Mutex
		if err := WithLock(m, func() error { return nil }); !errors.Is(err, ErrNilHandle) {
			t.Errorf("WithLock(nil) error = %v, want %v", err, ErrNilHandle)
		}
	})
}
