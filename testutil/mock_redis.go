package testutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MockRedis is a small in-memory Redis speaking RESP2 over net.Pipe.
// It implements the list commands the diagnostic sink relies on
type MockRedis struct {
	lists      map[string][]string
	mu         sync.RWMutex
	shouldFail bool // For testing error scenarios
	commands   int
}

// NewMockRedis creates a new mock Redis instance
func NewMockRedis() *MockRedis {
	return &MockRedis{
		lists: make(map[string][]string),
	}
}

// SetShouldFail sets whether operations should fail
func (m *MockRedis) SetShouldFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
}

// List returns a copy of the list stored at key
func (m *MockRedis) List(key string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.lists[key]...)
}

// Commands returns how many commands were handled, failed ones included
func (m *MockRedis) Commands() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commands
}

// Dialer returns a function usable as a redis dialer in tests
func (m *MockRedis) Dialer() func(context.Context, string, string) (net.Conn, error) {
	return func(_ context.Context, _, _ string) (net.Conn, error) {
		clientConn, serverConn := net.Pipe()
		go m.serveConn(serverConn)
		return clientConn, nil
	}
}

// NewMockRedisClient creates a Redis client that uses the mock
func NewMockRedisClient() (*redis.Client, *MockRedis) {
	mock := NewMockRedis()
	rdb := redis.NewClient(&redis.Options{
		Addr:   "mock",
		Dialer: mock.Dialer(),
	})
	return rdb, mock
}

func (m *MockRedis) serveConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)
	for {
		args, err := readCommand(reader)
		if err != nil {
			return
		}
		if err := m.handleCommand(args, writer); err != nil {
			return
		}
		if err := writer.Flush(); err != nil {
			return
		}
	}
}

func (m *MockRedis) handleCommand(args []string, w *bufio.Writer) error {
	if len(args) == 0 {
		return writeError(w, "empty command")
	}

	m.mu.Lock()
	m.commands++
	shouldFail := m.shouldFail
	m.mu.Unlock()
	if shouldFail {
		return writeError(w, "mock redis failure")
	}

	switch cmd := strings.ToUpper(args[0]); cmd {
	case "PING":
		return writeSimpleString(w, "PONG")
	case "RPUSH":
		return m.handleRPush(args, w)
	case "LRANGE":
		return m.handleLRange(args, w)
	case "LTRIM":
		return m.handleLTrim(args, w)
	case "LLEN":
		return m.handleLLen(args, w)
	case "DEL":
		return m.handleDel(args, w)
	case "FLUSHDB":
		m.mu.Lock()
		m.lists = make(map[string][]string)
		m.mu.Unlock()
		return writeSimpleString(w, "OK")
	default:
		return writeError(w, fmt.Sprintf("unknown command: %s", cmd))
	}
}

func (m *MockRedis) handleRPush(args []string, w *bufio.Writer) error {
	if len(args) < 3 {
		return writeError(w, "invalid args")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := args[1]
	m.lists[key] = append(m.lists[key], args[2:]...)
	return writeInt(w, int64(len(m.lists[key])))
}

func (m *MockRedis) handleLRange(args []string, w *bufio.Writer) error {
	if len(args) < 4 {
		return writeError(w, "invalid args")
	}
	start, err1 := strconv.Atoi(args[2])
	stop, err2 := strconv.Atoi(args[3])
	if err1 != nil || err2 != nil {
		return writeError(w, "value is not an integer or out of range")
	}

	m.mu.RLock()
	list := m.lists[args[1]]
	lo, hi := listRange(len(list), start, stop)
	var items []string
	if lo <= hi {
		items = append(items, list[lo:hi+1]...)
	}
	m.mu.RUnlock()

	return writeArrayBulk(w, items)
}

func (m *MockRedis) handleLTrim(args []string, w *bufio.Writer) error {
	if len(args) < 4 {
		return writeError(w, "invalid args")
	}
	start, err1 := strconv.Atoi(args[2])
	stop, err2 := strconv.Atoi(args[3])
	if err1 != nil || err2 != nil {
		return writeError(w, "value is not an integer or out of range")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := args[1]
	list := m.lists[key]
	lo, hi := listRange(len(list), start, stop)
	if lo > hi {
		delete(m.lists, key)
	} else {
		m.lists[key] = append([]string(nil), list[lo:hi+1]...)
	}
	return writeSimpleString(w, "OK")
}

func (m *MockRedis) handleLLen(args []string, w *bufio.Writer) error {
	if len(args) < 2 {
		return writeError(w, "invalid args")
	}

	m.mu.RLock()
	n := len(m.lists[args[1]])
	m.mu.RUnlock()

	return writeInt(w, int64(n))
}

func (m *MockRedis) handleDel(args []string, w *bufio.Writer) error {
	if len(args) < 2 {
		return writeError(w, "invalid args")
	}

	count := 0
	m.mu.Lock()
	for _, key := range args[1:] {
		if _, ok := m.lists[key]; ok {
			delete(m.lists, key)
			count++
		}
	}
	m.mu.Unlock()

	return writeInt(w, int64(count))
}

// listRange resolves Redis-style inclusive indexes (negative counts from
// the tail) against a list of length n. lo > hi means empty
func listRange(n, start, stop int) (int, int) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	return start, stop
}

// Helper functions for RESP protocol

func readCommand(r *bufio.Reader) ([]string, error) {
	prefix, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if prefix != '*' {
		return nil, errors.New("unexpected RESP prefix")
	}

	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(line)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, count)
	for i := 0; i < count; i++ {
		bulkPrefix, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if bulkPrefix != '$' {
			return nil, errors.New("unexpected bulk prefix")
		}
		lenLine, err := readLine(r)
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(lenLine)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}

	return args, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func writeSimpleString(w *bufio.Writer, msg string) error {
	_, err := w.WriteString("+" + msg + "\r\n")
	return err
}

func writeError(w *bufio.Writer, msg string) error {
	_, err := w.WriteString("-ERR " + msg + "\r\n")
	return err
}

func writeInt(w *bufio.Writer, value int64) error {
	_, err := w.WriteString(":" + strconv.FormatInt(value, 10) + "\r\n")
	return err
}

func writeBulkString(w *bufio.Writer, value string) error {
	_, err := w.WriteString("$" + strconv.Itoa(len(value)) + "\r\n" + value + "\r\n")
	return err
}

func writeArrayBulk(w *bufio.Writer, values []string) error {
	if _, err := w.WriteString("*" + strconv.Itoa(len(values)) + "\r\n"); err != nil {
		return err
	}
	for _, value := range values {
		if err := writeBulkString(w, value); err != nil {
			return err
		}
	}
	return nil
}
