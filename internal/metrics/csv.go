package metrics

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// CSVSink appends one row per training iteration to a CSV stream.
type CSVSink struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVSink wraps w in a CSV writer and emits the header row. If w also
// implements io.Closer it is closed by Close.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	cw := csv.NewWriter(w)
	header := []string{"step", "d_loss", "g_loss", "learning_rate", "momentum"}
	if err := cw.Write(header); err != nil {
		return nil, errors.Wrap(err, "write csv header")
	}
	s := &CSVSink{w: cw}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

// Report writes the record as one CSV row.
func (s *CSVSink) Report(rec Record) error {
	row := []string{
		strconv.FormatInt(rec.Step, 10),
		formatFloat(rec.DiscriminatorLoss),
		formatFloat(rec.GeneratorLoss),
		formatFloat(rec.LearningRate),
		formatFloat(rec.Momentum),
	}
	if err := s.w.Write(row); err != nil {
		return errors.Wrapf(err, "write csv row for step %d", rec.Step)
	}
	return nil
}

// Close flushes buffered rows and closes the underlying writer if it is
// closeable.
func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return errors.Wrap(err, "flush csv")
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
