// Package main provides the feedforward training CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/born-ml/feedforward/internal/config"
	"github.com/born-ml/feedforward/internal/dataset"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/parallel"
	"github.com/born-ml/feedforward/internal/report"
	"github.com/born-ml/feedforward/internal/train"
)

const version = "v0.1.0"

// Synthetic data shape: ten MNIST-sized classes.
const (
	syntheticClasses  = 10
	syntheticPerClass = 60
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("feedforward %s\n", version)
		return
	}

	if err := run(os.Args[1:], os.Stdout, log.Default()); err != nil {
		log.Fatalf("feedforward: %v", err)
	}
}

func run(args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("feedforward", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML run configuration")
	var o config.Overrides
	var lr float64
	fs.StringVar(&o.Data, "data", "", "Binary dataset file")
	fs.BoolVar(&o.Synthetic, "synthetic", false, "Train on generated data instead of a file")
	fs.StringVar(&o.Optimizer, "optimizer", "", "Optimizer: sgd or adam")
	fs.IntVar(&o.Epochs, "epochs", 0, "Number of training epochs")
	fs.IntVar(&o.BatchSize, "batch", 0, "Batch size")
	fs.Float64Var(&lr, "lr", 0, "Learning rate")
	seed := fs.Int64("seed", 0, "Random seed for initialization and shuffling")
	fs.IntVar(&o.TrainLimit, "train-limit", 0, "Train on at most this many samples (0 = all)")
	fs.IntVar(&o.EvalLimit, "eval-limit", 0, "Evaluate on at most this many samples (0 = all)")
	fs.IntVar(&o.Show, "show", 0, "Print this many test samples as ASCII art")
	fs.StringVar(&o.Chart, "chart", "", "Write a loss/accuracy chart to this file (.svg, .png, ...)")
	fs.BoolVar(&o.Verbose, "verbose", false, "Log batch progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	o.LearningRate = float32(lr)
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			o.Seed = seed
		}
	})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	data, err := loadData(cfg, rng)
	if err != nil {
		return err
	}
	trainSet, testSet := data.Split(cfg.SplitRatio)
	logger.Printf("data samples=%d features=%d classes=%d train=%d test=%d",
		data.NumSamples, data.NumFeatures, data.NumClasses(), trainSet.NumSamples, testSet.NumSamples)

	for k := 0; k < min(cfg.Show, testSet.NumSamples); k++ {
		if err := testSet.Display(stdout, k); err != nil {
			return err
		}
	}

	model, err := buildModel(cfg, data.NumFeatures, data.NumClasses())
	if err != nil {
		return err
	}
	model.Build(rng)
	if err := model.Summary(stdout); err != nil {
		return err
	}
	logger.Printf("model layers=%d parameters=%d optimizer=%s lr=%g",
		model.Len(), model.NumParameters(), cfg.Optimizer, cfg.LearningRate)

	optimizer := newOptimizer(cfg, logger)

	par := parallel.Sequential()
	if cfg.Parallel {
		par = parallel.DefaultConfig()
	}

	trainer := train.New(model, optimizer, nn.NewCrossEntropyLoss(), trainSet, testSet, train.Config{
		Epochs:     cfg.Epochs,
		BatchSize:  cfg.BatchSize,
		Verbose:    cfg.Verbose,
		TrainLimit: cfg.TrainLimit,
		EvalLimit:  cfg.EvalLimit,
		LogEvery:   cfg.LogEvery,
		Rand:       rng,
		Logger:     logger,
		Parallel:   par,
	})

	history, err := trainer.Run()
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	if best, ok := history.Best(); ok {
		logger.Printf("done epochs=%d best_epoch=%d best_accuracy=%.2f%% mean_loss=%.4f duration=%s",
			history.Len(), best.Epoch, best.Accuracy, history.MeanLoss(), history.TotalDuration())
	}

	if cfg.Chart != "" {
		if err := report.Save(history, cfg.Chart); err != nil {
			return err
		}
		logger.Printf("chart written to %s", cfg.Chart)
	}
	return nil
}

func newOptimizer(cfg *config.Config, logger *log.Logger) optim.Optimizer {
	if cfg.Optimizer == config.OptimizerAdam {
		return optim.NewAdam(optim.AdamConfig{LR: cfg.LearningRate})
	}
	sgd := optim.NewSGD(optim.SGDConfig{
		LR:       cfg.LearningRate,
		Momentum: cfg.Momentum,
		Verbose:  cfg.Verbose,
	})
	sgd.SetLogger(logger)
	return sgd
}

func loadData(cfg *config.Config, rng *rand.Rand) (*dataset.Dataset, error) {
	switch {
	case cfg.Synthetic:
		return dataset.Synthetic(rng, syntheticClasses, syntheticPerClass, dataset.MNISTSide*dataset.MNISTSide), nil
	case cfg.IDXImages != "":
		return dataset.LoadIDX(cfg.IDXImages, cfg.IDXLabels, cfg.MaxLoad)
	default:
		return dataset.Load(cfg.Data)
	}
}

// buildModel stacks the configured hidden layers between the input width
// and the class count.
func buildModel(cfg *config.Config, numFeatures, numClasses int) (*nn.Model, error) {
	if numClasses < 1 {
		return nil, fmt.Errorf("dataset has no labels")
	}
	act, err := nn.ParseActivation(cfg.Activation)
	if err != nil {
		return nil, err
	}
	sizes := append([]int{numFeatures}, cfg.Hidden...)
	sizes = append(sizes, numClasses)
	return nn.NewMLP(sizes, act, cfg.Softmax), nil
}
