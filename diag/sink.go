package diag

// Sink accepts diagnostic records
// Implementations must be safe for concurrent use
type Sink interface {
	// Report hands over one record. Emitters do not branch on what the
	// sink does with it
	Report(r Record)
}

// SinkFunc adapts a plain function to the Sink interface
type SinkFunc func(r Record)

// Report implements Sink.
func (f SinkFunc) Report(r Record) {
	f(r)
}

type nopSink struct{}

func (nopSink) Report(Record) {}

// Nop returns a sink that discards every record
func Nop() Sink {
	return nopSink{}
}

type multiSink []Sink

func (m multiSink) Report(r Record) {
	for _, s := range m {
		s.Report(r)
	}
}

// Multi returns a sink that forwards each record to all non-nil sinks in order
func Multi(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
