package core

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	argv, err := SplitCommand(`python3 train_minimal.py`)
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "train_minimal.py"}, argv)

	argv, err = SplitCommand(`sh -c 'echo hello world'`)
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "echo hello world"}, argv)

	_, err = SplitCommand("")
	assert.Error(t, err)
}

func TestRunPropagatesExitCode(t *testing.T) {
	err := Run([]string{"/bin/sh", "-c", "exit 7"}, "")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 7, exitErr.Code)
}

func TestRunZeroExit(t *testing.T) {
	assert.NoError(t, Run([]string{"/bin/sh", "-c", "exit 0"}, ""))
}

func TestRunMissingProgram(t *testing.T) {
	err := Run([]string{"/nonexistent/trainer"}, "")
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestRunWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	require.NoError(t, Run([]string{"/bin/sh", "-c", "pwd > marker"}, dir))
	out, err := ioutil.ReadFile(marker)
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, string(out), resolved)
}

func TestLoadEnv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), "train.env")
	require.NoError(t, ioutil.WriteFile(dotenv,
		[]byte("HIERO_TEST_VALUE=loaded\n"), 0644))
	t.Setenv("HIERO_TEST_VALUE", "")
	os.Unsetenv("HIERO_TEST_VALUE")

	require.NoError(t, LoadEnv(EnvSpec{Dotenv: dotenv}))
	assert.Equal(t, "loaded", os.Getenv("HIERO_TEST_VALUE"))
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.Error(t, LoadEnv(EnvSpec{Dotenv: "/nonexistent/train.env"}))
	// no dotenv configured is not an error
	assert.NoError(t, LoadEnv(EnvSpec{}))
}
