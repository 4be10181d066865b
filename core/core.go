package core

import (
	"strconv"

	"github.com/jessevdk/go-flags"
)

// Trainer defaults
const (
	DefaultEpochs     = 20
	DefaultBatchSize  = 16
	DefaultEvalPeriod = 1000
)

// Trainer command-line flags honored by train_minimal.py
const (
	EpochsFlag     = "--epochs"
	BatchSizeFlag  = "--batch_size"
	EvalPeriodFlag = "--eval_period"
	CheckpointFlag = "--checkpoint"
)

// TrainConfig holds the scalar knobs forwarded to the trainer.
// An empty Checkpoint means "start fresh"; a non-empty value is an
// identifier the trainer resolves on its own.
type TrainConfig struct {
	Epochs     int    `json:"epochs" yaml:"epochs"`
	BatchSize  int    `json:"batch_size" yaml:"batch_size"`
	EvalPeriod int    `json:"eval_period" yaml:"eval_period"`
	Checkpoint string `json:"checkpoint,omitempty" yaml:"checkpoint,omitempty"`
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:     DefaultEpochs,
		BatchSize:  DefaultBatchSize,
		EvalPeriod: DefaultEvalPeriod,
	}
}

// TrainerArgs assembles the trainer argument vector. The checkpoint flag
// is appended last and only when a checkpoint is configured; the value is
// passed through untouched.
func (c TrainConfig) TrainerArgs() []string {
	args := []string{
		EpochsFlag, strconv.Itoa(c.Epochs),
		BatchSizeFlag, strconv.Itoa(c.BatchSize),
		EvalPeriodFlag, strconv.Itoa(c.EvalPeriod),
	}
	if len(c.Checkpoint) > 0 {
		args = append(args, CheckpointFlag, c.Checkpoint)
	}
	return args
}

// SelectSpec is one chunk of a PBS -l select statement
// (e.g. select=1:mem=16gb:ncpus=8:ngpus=1)
type SelectSpec struct {
	Nodes int    `json:"nodes" yaml:"nodes"`
	Mem   string `json:"mem" yaml:"mem"`
	CPUs  int    `json:"ncpus" yaml:"ncpus"`
	GPUs  int    `json:"ngpus" yaml:"ngpus"`
}

// JobSpec holds the PBS directives emitted ahead of the script body
type JobSpec struct {
	Name       string     `json:"name" yaml:"name"`
	Queue      string     `json:"queue" yaml:"queue"`
	Walltime   string     `json:"walltime" yaml:"walltime"`
	JoinOutput bool       `json:"join_output" yaml:"join_output"`
	Select     SelectSpec `json:"select" yaml:"select"`
}

// EnvSpec describes the environment activation preamble: an initializer
// to source, a named environment to activate, and an optional dotenv file
// loaded into the launcher's own environment before anything runs.
type EnvSpec struct {
	Init   string `json:"init,omitempty" yaml:"init,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Dotenv string `json:"dotenv,omitempty" yaml:"dotenv,omitempty"`
}

// Profile binds scheduler directives, environment activation, the project
// working directory, and the external program command lines.
type Profile struct {
	Job       JobSpec     `json:"job" yaml:"job"`
	Env       EnvSpec     `json:"env" yaml:"env"`
	Workdir   string      `json:"workdir" yaml:"workdir"`
	Trainer   string      `json:"trainer" yaml:"trainer"`
	Inference string      `json:"inference,omitempty" yaml:"inference,omitempty"`
	Train     TrainConfig `json:"train" yaml:"train"`
}

// DefaultProfile matches the launcher scripts this tool replaces.
// The checkpoint is left empty on purpose: resuming from a baked-in
// checkpoint identifier goes stale quickly.
func DefaultProfile() Profile {
	return Profile{
		Job: JobSpec{
			Name:       "train_hiero",
			Queue:      "gpu",
			Walltime:   "24:00:00",
			JoinOutput: true,
			Select: SelectSpec{
				Nodes: 1,
				Mem:   "16gb",
				CPUs:  8,
				GPUs:  1,
			},
		},
		Env: EnvSpec{
			Init: "${HOME}/miniconda3/etc/profile.d/conda.sh",
			Name: "hiero",
		},
		Workdir:   "${HOME}/hieroglyphs",
		Trainer:   "python3 train_minimal.py",
		Inference: "python3 inference_local_model.py",
		Train:     DefaultTrainConfig(),
	}
}

func CreateHelpErr() error {
	err := flags.Error{
		Type:    flags.ErrHelp,
		Message: "show help message",
	}
	return &err
}
