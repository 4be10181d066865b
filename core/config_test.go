package core

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundtrip(t *testing.T) {
	t.Setenv(HieroHpcConfigEnv, filepath.Join(t.TempDir(), "config.json"))

	profile := DefaultProfile()
	profile.Job.Queue = "gpu_long"
	profile.Train.Epochs = 40
	require.NoError(t, WriteConfig(Config{"long": profile}))

	config, err := ReadConfig()
	require.NoError(t, err)
	require.Contains(t, config, "long")
	assert.Equal(t, "gpu_long", config["long"].Job.Queue)
	assert.Equal(t, 40, config["long"].Train.Epochs)
}

func TestReadConfigMissing(t *testing.T) {
	t.Setenv(HieroHpcConfigEnv, filepath.Join(t.TempDir(), "config.json"))
	_, err := ReadConfig()
	assert.Error(t, err)
}

func TestGetProfileFallback(t *testing.T) {
	t.Setenv(HieroHpcConfigEnv, filepath.Join(t.TempDir(), "config.json"))

	// default profile backs the "default" name with no config file
	profile, err := GetProfile("default")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), profile)

	_, err = GetProfile("missing")
	assert.Error(t, err)
}

func TestGetProfileNamed(t *testing.T) {
	t.Setenv(HieroHpcConfigEnv, filepath.Join(t.TempDir(), "config.json"))

	stored := DefaultProfile()
	stored.Workdir = "/scratch/hieroglyphs"
	require.NoError(t, WriteConfig(Config{"scratch": stored}))

	profile, err := GetProfile("scratch")
	require.NoError(t, err)
	assert.Equal(t, "/scratch/hieroglyphs", profile.Workdir)
}

func TestConfigTarget(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := ReadConfigTarget()
	assert.Error(t, err)

	require.NoError(t, WriteConfigTarget("scratch"))
	target, err := ReadConfigTarget()
	require.NoError(t, err)
	assert.Equal(t, "scratch", target)
}

func TestLoadProfileFile(t *testing.T) {
	doc := `job:
  name: resume_hiero
  queue: gpu_long
train:
  epochs: 60
  checkpoint: checkpoint_total_steps=12000_loss=0.49
`
	filename := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, ioutil.WriteFile(filename, []byte(doc), 0644))

	profile, err := LoadProfileFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "resume_hiero", profile.Job.Name)
	assert.Equal(t, "gpu_long", profile.Job.Queue)
	assert.Equal(t, 60, profile.Train.Epochs)
	assert.Equal(t, "checkpoint_total_steps=12000_loss=0.49", profile.Train.Checkpoint)
	// fields left out of the document keep the built-in defaults
	assert.Equal(t, DefaultBatchSize, profile.Train.BatchSize)
	assert.Equal(t, "python3 train_minimal.py", profile.Trainer)
}

func TestLoadProfileFileInvalid(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, ioutil.WriteFile(filename, []byte("job: ["), 0644))
	_, err := LoadProfileFile(filename)
	assert.Error(t, err)
}
