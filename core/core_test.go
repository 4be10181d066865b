package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFlag(args []string, flag string) int {
	count := 0
	for _, arg := range args {
		if arg == flag {
			count++
		}
	}
	return count
}

func TestTrainerArgsDefaults(t *testing.T) {
	args := DefaultTrainConfig().TrainerArgs()
	assert.Equal(t, []string{
		"--epochs", "20",
		"--batch_size", "16",
		"--eval_period", "1000",
	}, args)
}

func TestTrainerArgsOmitsEmptyCheckpoint(t *testing.T) {
	tests := []TrainConfig{
		DefaultTrainConfig(),
		{Epochs: 1, BatchSize: 2, EvalPeriod: 3},
		{Epochs: 100, BatchSize: 64, EvalPeriod: 500, Checkpoint: ""},
	}
	for _, cfg := range tests {
		args := cfg.TrainerArgs()
		assert.Zero(t, countFlag(args, CheckpointFlag), "config %+v", cfg)
		assert.NotContains(t, strings.Join(args, " "), "checkpoint")
	}
}

func TestTrainerArgsCheckpointPassthrough(t *testing.T) {
	checkpoint := "checkpoint_total_steps=12000_loss=0.49"
	cfg := DefaultTrainConfig()
	cfg.Checkpoint = checkpoint

	args := cfg.TrainerArgs()
	assert.Equal(t, 1, countFlag(args, CheckpointFlag))
	// checkpoint value follows the flag untouched
	require.Equal(t, CheckpointFlag, args[len(args)-2])
	assert.Equal(t, checkpoint, args[len(args)-1])
}

func TestTrainerArgsSingleOccurrences(t *testing.T) {
	cfg := TrainConfig{
		Epochs:     40,
		BatchSize:  8,
		EvalPeriod: 250,
		Checkpoint: "checkpoint_total_steps=24000_loss=0.31",
	}
	args := cfg.TrainerArgs()
	for _, flag := range []string{EpochsFlag, BatchSizeFlag, EvalPeriodFlag, CheckpointFlag} {
		assert.Equal(t, 1, countFlag(args, flag), flag)
	}
	assert.Equal(t, "--epochs 40 --batch_size 8 --eval_period 250 "+
		"--checkpoint checkpoint_total_steps=24000_loss=0.31",
		strings.Join(args, " "))
}

func TestTrainerCommand(t *testing.T) {
	profile := DefaultProfile()
	argv, err := profile.TrainerCommand()
	require.NoError(t, err)
	assert.Equal(t, "python3 train_minimal.py --epochs 20 --batch_size 16 --eval_period 1000",
		strings.Join(argv, " "))

	profile.Train.Checkpoint = "checkpoint_total_steps=12000_loss=0.49"
	argv, err = profile.TrainerCommand()
	require.NoError(t, err)
	assert.Equal(t, "python3 train_minimal.py --epochs 20 --batch_size 16 --eval_period 1000 "+
		"--checkpoint checkpoint_total_steps=12000_loss=0.49",
		strings.Join(argv, " "))
}

func TestTrainerCommandEmpty(t *testing.T) {
	profile := DefaultProfile()
	profile.Trainer = ""
	_, err := profile.TrainerCommand()
	assert.Error(t, err)
}

func TestInferenceCommand(t *testing.T) {
	profile := DefaultProfile()
	argv, err := profile.InferenceCommand("checkpoint_total_steps=12000_loss=0.50", "predictions.txt")
	require.NoError(t, err)
	assert.Equal(t, "python3 inference_local_model.py "+
		"--checkpoint checkpoint_total_steps=12000_loss=0.50 --output predictions.txt",
		strings.Join(argv, " "))

	_, err = profile.InferenceCommand("", "predictions.txt")
	assert.Error(t, err)
}
