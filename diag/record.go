package diag

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"
)

// unknownLocation is used when the caller cannot be identified
const unknownLocation = "<unknown>"

// Record is one diagnostic event
type Record struct {
	// Code is the error number, 0 when none applies
	Code syscall.Errno `json:"code"`

	// Location identifies the source position that emitted the record
	Location string `json:"location"`

	// Message is free text for humans, may be empty
	Message string `json:"message"`

	// Time is when the record was created
	Time time.Time `json:"time"`
}

// NewRecord creates a record stamped with the current time
func NewRecord(code syscall.Errno, location, message string) Record {
	return Record{
		Code:     code,
		Location: location,
		Message:  message,
		Time:     time.Now(),
	}
}

// Caller returns "file.go:line pkg.Func" for the frame skip levels above
// the caller of Caller
func Caller(skip int) string {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return unknownLocation
	}

	name := unknownLocation
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		// Trim the import path, keep package.Func
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}

	return fmt.Sprintf("%s:%d %s", filepath.Base(file), line, name)
}

// String formats the record on a single line
func (r Record) String() string {
	if r.Code == 0 {
		return fmt.Sprintf("[%s] %s", r.Location, r.Message)
	}
	return fmt.Sprintf("[%s] %s (errno %d: %s)", r.Location, r.Message, int(r.Code), r.Code.Error())
}
