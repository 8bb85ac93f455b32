// Package mutex wraps sync.Mutex with error checking and diagnostics.
//
// The lifecycle is New, then any number of Lock/Unlock pairs, then Close:
//
//	m, err := mutex.New()
//	if err != nil {
//		return err
//	}
//	if err := m.Lock(); err != nil {
//		return err
//	}
//	// critical section
//	if err := m.Unlock(); err != nil {
//		return err
//	}
//	return m.Close()
//
// Misuse that sync.Mutex would turn into a deadlock or a fatal error, such
// as locking twice from the same goroutine or unlocking a mutex the caller
// does not hold, comes back as an error instead. Close refuses to destroy
// a locked mutex.
//
// There is no recursive mode, no reader/writer split, no timed or
// cancellable Lock and no cross-process variant.
package mutex
