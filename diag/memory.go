package diag

import (
	"sync"
	"syscall"
)

// MemorySink keeps every record in memory, mostly for tests
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

// NewMemorySink creates an empty sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Report implements Sink.
func (s *MemorySink) Report(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Records returns a copy of what has been reported so far
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

// Len returns the number of records
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Last returns the most recent record, ok is false when there is none
func (s *MemorySink) Last() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Codes returns the error codes in report order
func (s *MemorySink) Codes() []syscall.Errno {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]syscall.Errno, len(s.records))
	for i, rec := range s.records {
		codes[i] = rec.Code
	}
	return codes
}

// Reset drops all records
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
