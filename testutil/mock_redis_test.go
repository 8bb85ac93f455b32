package testutil

import (
	"context"
	"reflect"
	"testing"
)

func TestNewMockRedisClient(t *testing.T) {
	client, mock := NewMockRedisClient()
	if client == nil {
		t.Fatal("NewMockRedisClient() client is nil")
	}
	if mock == nil {
		t.Fatal("NewMockRedisClient() mock is nil")
	}
	defer func() { _ = client.Close() }()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if pong != "PONG" {
		t.Errorf("Ping() = %q, want %q", pong, "PONG")
	}
	if mock.Commands() == 0 {
		t.Error("Commands() = 0, want at least 1")
	}
}

func TestMockRedis_Lists(t *testing.T) {
	client, mock := NewMockRedisClient()
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	t.Run("rpush and lrange", func(t *testing.T) {
		n, err := client.RPush(ctx, "l1", "a", "b", "c").Result()
		if err != nil {
			t.Fatalf("RPush() error = %v", err)
		}
		if n != 3 {
			t.Errorf("RPush() = %d, want 3", n)
		}

		got, err := client.LRange(ctx, "l1", 0, -1).Result()
		if err != nil {
			t.Fatalf("LRange() error = %v", err)
		}
		if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
			t.Errorf("LRange() = %v, want [a b c]", got)
		}

		got, _ = client.LRange(ctx, "l1", -2, -1).Result()
		if !reflect.DeepEqual(got, []string{"b", "c"}) {
			t.Errorf("LRange(-2, -1) = %v, want [b c]", got)
		}
	})

	t.Run("ltrim keeps tail", func(t *testing.T) {
		_ = client.RPush(ctx, "l2", "1", "2", "3", "4").Err()
		if err := client.LTrim(ctx, "l2", -2, -1).Err(); err != nil {
			t.Fatalf("LTrim() error = %v", err)
		}
		if got := mock.List("l2"); !reflect.DeepEqual(got, []string{"3", "4"}) {
			t.Errorf("List() after LTrim = %v, want [3 4]", got)
		}

		n, err := client.LLen(ctx, "l2").Result()
		if err != nil || n != 2 {
			t.Errorf("LLen() = %d, %v, want 2, nil", n, err)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		got, err := client.LRange(ctx, "missing", 0, -1).Result()
		if err != nil {
			t.Fatalf("LRange() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("LRange() on missing key = %v, want empty", got)
		}
	})

	t.Run("del and flushdb", func(t *testing.T) {
		_ = client.RPush(ctx, "l3", "x").Err()
		n, err := client.Del(ctx, "l3", "nope").Result()
		if err != nil || n != 1 {
			t.Errorf("Del() = %d, %v, want 1, nil", n, err)
		}

		_ = client.RPush(ctx, "l4", "x").Err()
		if err := client.FlushDB(ctx).Err(); err != nil {
			t.Fatalf("FlushDB() error = %v", err)
		}
		if len(mock.List("l4")) != 0 {
			t.Error("FlushDB() did not clear lists")
		}
	})
}

func TestMockRedis_ShouldFail(t *testing.T) {
	client, mock := NewMockRedisClient()
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	mock.SetShouldFail(true)
	if err := client.RPush(ctx, "k", "v").Err(); err == nil {
		t.Error("RPush() with failing mock should return error")
	}

	mock.SetShouldFail(false)
	if err := client.RPush(ctx, "k", "v").Err(); err != nil {
		t.Errorf("RPush() after recovery error = %v", err)
	}
}

func TestListRange(t *testing.T) {
	cases := []struct {
		n, start, stop int
		lo, hi         int
	}{
		{5, 0, -1, 0, 4},
		{5, -2, -1, 3, 4},
		{5, 0, 10, 0, 4},
		{5, -10, 1, 0, 1},
		{0, 0, -1, 0, -1},
		{5, 3, 1, 3, 1},
	}
	for _, c := range cases {
		lo, hi := listRange(c.n, c.start, c.stop)
		if lo != c.lo || hi != c.hi {
			t.Errorf("listRange(%d, %d, %d) = %d, %d, want %d, %d", c.n, c.start, c.stop, lo, hi, c.lo, c.hi)
		}
	}
}
