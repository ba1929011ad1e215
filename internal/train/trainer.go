// Package train runs the adversarial training loop: alternating
// discriminator and generator updates over mini-batches of real data and
// sampled noise.
package train

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/advnet-ml/advnet/internal/autodiff"
	"github.com/advnet-ml/advnet/internal/data"
	"github.com/advnet-ml/advnet/internal/gan"
	"github.com/advnet-ml/advnet/internal/metrics"
	"github.com/advnet-ml/advnet/internal/optim"
	"github.com/advnet-ml/advnet/internal/tensor"
)

// Config holds loop-level settings. Model hyperparameters live in
// gan.Config.
type Config struct {
	// Steps is the total number of training iterations. Each iteration is
	// one discriminator update followed by one generator update.
	Steps int64
	// BatchSize is the number of examples per mini-batch.
	BatchSize int
	// LogEvery controls how often progress is logged. Zero disables
	// periodic logging.
	LogEvery int64
}

// DefaultConfig returns the standard loop settings: 30000 iterations at
// batch size 128.
func DefaultConfig() Config {
	return Config{
		Steps:     30000,
		BatchSize: 128,
		LogEvery:  1000,
	}
}

// StepCallback observes a completed iteration. It runs after both
// parameter updates; returning an error aborts training.
type StepCallback func(step int64, rec metrics.Record) error

// Trainer owns the two networks, their optimizers, the data pipeline and
// the gradient tape, and advances them one adversarial iteration at a
// time.
type Trainer[B tensor.Backend] struct {
	backend *autodiff.Backend[B]

	generator     *gan.Generator[*autodiff.Backend[B]]
	discriminator *gan.Discriminator[*autodiff.Backend[B]]
	noise         *gan.NoiseSampler[*autodiff.Backend[B]]
	sampler       *data.Sampler

	genOpt  optim.Optimizer
	discOpt optim.Optimizer

	config  Config
	epsilon float32
	sink    metrics.Sink

	step int64
}

// New wires a Trainer from a model configuration, a dataset and a single
// RNG. The generator and discriminator get independent optimizers over
// their own parameters; that ownership split is what keeps each update
// from touching the other network.
func New[B tensor.Backend](
	modelCfg gan.Config,
	loopCfg Config,
	dataset *data.Dataset,
	rng *rand.Rand,
	inner B,
	sink metrics.Sink,
) (*Trainer[B], error) {
	if dataset.VectorDim() != modelCfg.DataDim {
		return nil, errors.Errorf("dataset vectors have %d elements, model expects %d",
			dataset.VectorDim(), modelCfg.DataDim)
	}
	if sink == nil {
		sink = metrics.Discard{}
	}

	backend := autodiff.New(inner)
	generator := gan.NewGenerator(modelCfg, rng, backend)
	discriminator := gan.NewDiscriminator(modelCfg, rng, backend)

	optConfig := optim.SGDConfig{
		LR:       gan.DefaultLRSchedule(),
		Momentum: gan.DefaultMomentumSchedule(),
	}

	return &Trainer[B]{
		backend:       backend,
		generator:     generator,
		discriminator: discriminator,
		noise:         gan.NewNoiseSampler(modelCfg.NoiseDim, rng, backend),
		sampler:       data.NewSampler(dataset, loopCfg.BatchSize, rng),
		genOpt:        optim.NewSGD(generator.Parameters(), optConfig),
		discOpt:       optim.NewSGD(discriminator.Parameters(), optConfig),
		config:        loopCfg,
		epsilon:       modelCfg.LogEps,
		sink:          sink,
	}, nil
}

// Generator returns the generator network.
func (t *Trainer[B]) Generator() *gan.Generator[*autodiff.Backend[B]] {
	return t.generator
}

// Discriminator returns the discriminator network.
func (t *Trainer[B]) Discriminator() *gan.Discriminator[*autodiff.Backend[B]] {
	return t.discriminator
}

// Backend returns the autodiff backend the networks run on.
func (t *Trainer[B]) Backend() *autodiff.Backend[B] {
	return t.backend
}

// Sample generates a batch of images from fresh noise with gradient
// recording off.
func (t *Trainer[B]) Sample(batchSize int) *tensor.Tensor[*autodiff.Backend[B]] {
	tape := t.backend.Tape()
	wasRecording := tape.IsRecording()
	tape.StopRecording()
	defer func() {
		if wasRecording {
			tape.StartRecording()
		}
	}()
	return t.generator.Forward(t.noise.Sample(batchSize))
}

// Step runs one adversarial iteration and reports its record to the sink.
func (t *Trainer[B]) Step() (metrics.Record, error) {
	// Read the schedules before the optimizers advance them so the record
	// reflects the values this iteration actually used.
	lr := t.discOpt.LearningRate()
	momentum := t.discOpt.Momentum()

	dLoss := t.discriminatorStep()
	gLoss := t.generatorStep()

	rec := metrics.Record{
		Step:              t.step,
		DiscriminatorLoss: dLoss,
		GeneratorLoss:     gLoss,
		LearningRate:      lr,
		Momentum:          momentum,
	}
	t.step++

	if err := t.sink.Report(rec); err != nil {
		return rec, errors.Wrapf(err, "report step %d", rec.Step)
	}
	return rec, nil
}

// discriminatorStep updates the discriminator on one real batch and one
// generated batch. The generated batch is produced with the tape off, so
// it enters the recorded graph as a constant and the update cannot reach
// the generator's parameters.
func (t *Trainer[B]) discriminatorStep() float32 {
	tape := t.backend.Tape()
	tape.Clear()

	realBatch := data.NextBatch(t.sampler, t.backend)
	fakeBatch := t.generator.Forward(t.noise.Sample(t.config.BatchSize))

	tape.StartRecording()
	dReal := t.discriminator.Forward(realBatch)
	dFake := t.discriminator.Forward(fakeBatch)
	loss := gan.DiscriminatorLoss(dReal, dFake, t.epsilon)
	tape.StopRecording()

	grads := tape.Backward(onesSeed(), t.backend)
	t.discOpt.Step(grads)
	return loss.Item()
}

// generatorStep updates the generator through the discriminator on a
// fresh noise batch. The whole forward pass is recorded, but the
// generator's optimizer only owns generator parameters, so the
// discriminator's gradients are computed and discarded.
func (t *Trainer[B]) generatorStep() float32 {
	tape := t.backend.Tape()
	tape.Clear()

	noiseBatch := t.noise.Sample(t.config.BatchSize)

	tape.StartRecording()
	fakeBatch := t.generator.Forward(noiseBatch)
	dFake := t.discriminator.Forward(fakeBatch)
	loss := gan.GeneratorLoss(dFake, t.epsilon)
	tape.StopRecording()

	grads := tape.Backward(onesSeed(), t.backend)
	t.genOpt.Step(grads)
	return loss.Item()
}

// Run executes the configured number of iterations, stopping early if the
// context is cancelled or the callback returns an error. callback may be
// nil.
func (t *Trainer[B]) Run(ctx context.Context, callback StepCallback) error {
	klog.Infof("training for %d iterations at batch size %d", t.config.Steps, t.config.BatchSize)
	for t.step < t.config.Steps {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "training stopped at step %d", t.step)
		}

		rec, err := t.Step()
		if err != nil {
			return err
		}

		if t.config.LogEvery > 0 && (rec.Step+1)%t.config.LogEvery == 0 {
			klog.Infof("step %d: d_loss=%.4f g_loss=%.4f lr=%.6f momentum=%.2f",
				rec.Step, rec.DiscriminatorLoss, rec.GeneratorLoss, rec.LearningRate, rec.Momentum)
		}

		if callback != nil {
			if err := callback(rec.Step, rec); err != nil {
				return errors.Wrapf(err, "callback at step %d", rec.Step)
			}
		}
	}
	return nil
}

// StepCount returns the number of completed iterations.
func (t *Trainer[B]) StepCount() int64 {
	return t.step
}

func onesSeed() *tensor.RawTensor {
	seed := tensor.MustNewRaw(tensor.Shape{1})
	seed.Data()[0] = 1
	return seed
}
