// Command advnet trains a generative adversarial network on an MNIST-format
// image set and writes loss logs, loss charts and sample grids.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/advnet-ml/advnet/internal/backend/cpu"
	"github.com/advnet-ml/advnet/internal/data"
	"github.com/advnet-ml/advnet/internal/gan"
	"github.com/advnet-ml/advnet/internal/imageio"
	"github.com/advnet-ml/advnet/internal/metrics"
	"github.com/advnet-ml/advnet/internal/nn"
	"github.com/advnet-ml/advnet/internal/tensor"
	"github.com/advnet-ml/advnet/internal/train"
)

var (
	flagData        = flag.String("data", "data/train-images-idx3-ubyte", "path to the IDX image file to train on")
	flagOut         = flag.String("out", "out", "directory for logs, charts and sample grids")
	flagSteps       = flag.Int64("steps", 30000, "number of training iterations")
	flagBatch       = flag.Int("batch", 128, "mini-batch size")
	flagSeed        = flag.Int64("seed", 1, "random seed; runs with the same seed are bit-identical")
	flagSampleEvery = flag.Int64("sample_every", 5000, "iterations between sample grids, 0 to disable")
	flagSampleCount = flag.Int("sample_count", 64, "images per sample grid")
	flagChartEvery  = flag.Int64("chart_every", 100, "iterations averaged per chart point")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if err := run(); err != nil {
		klog.Exitf("training failed: %+v", err)
	}
}

func run() error {
	dataset, err := data.LoadDataset(*flagData)
	if err != nil {
		return err
	}
	klog.Infof("loaded %s examples (%dx%d) from %s",
		humanize.Comma(int64(dataset.Len())), dataset.Rows(), dataset.Cols(), *flagData)

	if err := os.MkdirAll(*flagOut, 0o755); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(*flagOut, "losses.csv"))
	if err != nil {
		return err
	}
	csvSink, err := metrics.NewCSVSink(csvFile)
	if err != nil {
		csvFile.Close()
		return err
	}
	chartSink := metrics.NewChartSink(filepath.Join(*flagOut, "losses.svg"), 1024, 400, *flagChartEvery)
	sink := metrics.MultiSink{csvSink, chartSink}
	defer func() {
		if err := sink.Close(); err != nil {
			klog.Errorf("closing metric sinks: %v", err)
		}
	}()

	rng := rand.New(rand.NewSource(*flagSeed))
	modelCfg := gan.DefaultConfig()
	loopCfg := train.Config{
		Steps:     *flagSteps,
		BatchSize: *flagBatch,
		LogEvery:  1000,
	}

	trainer, err := train.New(modelCfg, loopCfg, dataset, rng, cpu.New(), sink)
	if err != nil {
		return err
	}
	klog.Infof("generator: %s parameters, discriminator: %s parameters",
		humanize.Comma(paramCount(trainer.Generator().Parameters())),
		humanize.Comma(paramCount(trainer.Discriminator().Parameters())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bar := progressbar.Default(*flagSteps, "training")
	callback := func(step int64, rec metrics.Record) error {
		if err := bar.Add(1); err != nil {
			return err
		}
		if *flagSampleEvery > 0 && (step+1)%*flagSampleEvery == 0 {
			return saveSamples(trainer, dataset, step+1)
		}
		return nil
	}

	if err := trainer.Run(ctx, callback); err != nil {
		return err
	}

	if err := saveSamples(trainer, dataset, trainer.StepCount()); err != nil {
		return err
	}
	klog.Infof("done: %s iterations, artifacts in %s",
		humanize.Comma(trainer.StepCount()), *flagOut)
	return nil
}

func paramCount[B tensor.Backend](params []*nn.Parameter[B]) int64 {
	var n int64
	for _, p := range params {
		n += int64(p.Tensor().NumElements())
	}
	return n
}

func saveSamples(trainer *train.Trainer[*cpu.Backend], dataset *data.Dataset, step int64) error {
	batch := trainer.Sample(*flagSampleCount)
	dim := dataset.VectorDim()
	flat := batch.Data()
	vectors := make([][]float32, *flagSampleCount)
	for i := range vectors {
		vectors[i] = flat[i*dim : (i+1)*dim]
	}
	path := filepath.Join(*flagOut, fmt.Sprintf("samples_%06d.png", step))
	return imageio.SaveGrid(path, vectors, dataset.Rows(), dataset.Cols(), imageio.DefaultGridOptions())
}
