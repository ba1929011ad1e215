package metrics

import (
	"os"

	mg "github.com/erkkah/margaid"
	"github.com/pkg/errors"
)

// ChartSink accumulates loss curves and renders them as an SVG line chart
// when closed. With tens of thousands of iterations the raw curves are too
// dense to plot point for point, so the sink keeps a running average and
// emits one chart point per sampleEvery iterations.
type ChartSink struct {
	path        string
	width       int
	height      int
	sampleEvery int64

	dSeries   *mg.Series
	gSeries   *mg.Series
	allPoints *mg.Series

	dSum, gSum float64
	count      int64
}

// NewChartSink creates a sink that renders to the SVG file at path.
// sampleEvery controls the chart resolution; values below 1 plot every
// iteration.
func NewChartSink(path string, width, height int, sampleEvery int64) *ChartSink {
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	return &ChartSink{
		path:        path,
		width:       width,
		height:      height,
		sampleEvery: sampleEvery,
		dSeries:     mg.NewSeries(mg.Titled("discriminator")),
		gSeries:     mg.NewSeries(mg.Titled("generator")),
		allPoints:   mg.NewSeries(),
	}
}

// Report folds the record into the running averages and emits a chart
// point when a sampling window completes.
func (s *ChartSink) Report(rec Record) error {
	s.dSum += float64(rec.DiscriminatorLoss)
	s.gSum += float64(rec.GeneratorLoss)
	s.count++
	if s.count%s.sampleEvery == 0 {
		step := float64(rec.Step)
		n := float64(s.sampleEvery)
		dValue := mg.MakeValue(step, s.dSum/n)
		gValue := mg.MakeValue(step, s.gSum/n)
		s.dSeries.Add(dValue)
		s.gSeries.Add(gValue)
		s.allPoints.Add(dValue)
		s.allPoints.Add(gValue)
		s.dSum, s.gSum = 0, 0
	}
	return nil
}

// Close renders the accumulated curves to the SVG file.
func (s *ChartSink) Close() error {
	if s.allPoints.Size() == 0 {
		return nil
	}
	series := []*mg.Series{s.dSeries, s.gSeries}
	diagram := mg.New(s.width, s.height,
		mg.WithAutorange(mg.XAxis, series...),
		mg.WithAutorange(mg.YAxis, series...),
		mg.WithInset(70),
		mg.WithPadding(2),
		mg.WithColorScheme(90),
		mg.WithBackgroundColor("#f8f8f8"),
	)
	for _, line := range series {
		diagram.Line(line, mg.UsingAxes(mg.XAxis, mg.YAxis), mg.UsingStrokeWidth(2))
	}
	diagram.Axis(s.allPoints, mg.XAxis, diagram.ValueTicker('f', 0, 10), false, "iteration")
	diagram.Axis(s.allPoints, mg.YAxis, diagram.ValueTicker('f', 3, 10), true, "loss")
	diagram.Frame()
	diagram.Title("Training losses")
	diagram.Legend(mg.BottomLeft)

	file, err := os.Create(s.path)
	if err != nil {
		return errors.Wrapf(err, "create chart %s", s.path)
	}
	defer file.Close()
	if err := diagram.Render(file); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return nil
}
