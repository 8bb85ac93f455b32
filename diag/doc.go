// Package diag carries the diagnostic records emitted by the mutex wrapper.
//
// A Record holds a numeric error code, the source location that produced it
// and a human-readable message. Records are handed to a Sink, which decides
// how to present or store them. Sinks never report back: callers do not
// change their control flow based on what a sink does with a record.
package diag
