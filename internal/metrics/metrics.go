// Package metrics collects per-iteration training measurements and writes
// them to pluggable sinks (CSV logs, SVG charts).
package metrics

// Record captures the observable state of one training iteration.
type Record struct {
	Step              int64
	DiscriminatorLoss float32
	GeneratorLoss     float32
	LearningRate      float32
	Momentum          float32
}

// Sink receives training records. Report is called once per iteration;
// Close flushes any buffered output.
type Sink interface {
	Report(rec Record) error
	Close() error
}

// MultiSink fans records out to several sinks.
type MultiSink []Sink

// Report forwards the record to every sink, stopping at the first error.
func (m MultiSink) Report(rec Record) error {
	for _, s := range m {
		if err := s.Report(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and returns the first error encountered.
func (m MultiSink) Close() error {
	var firstErr error
	for _, s := range m {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Discard is a Sink that drops all records.
type Discard struct{}

func (Discard) Report(Record) error { return nil }
func (Discard) Close() error        { return nil }
