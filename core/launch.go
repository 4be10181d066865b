package core

import (
	"errors"
	"os"
	"os/exec"
	"strconv"

	"github.com/google/shlex"
	"github.com/joho/godotenv"

	logger "github.com/hiero-transformer/hierohpc/logger"
)

// ExitError carries an external program's exit status up to main so the
// launcher terminates with the same code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}

// LoadEnv loads the profile's dotenv file, if any, into the launcher's
// environment. A configured file that cannot be read is fatal.
func LoadEnv(env EnvSpec) error {
	if len(env.Dotenv) == 0 {
		return nil
	}
	return godotenv.Load(env.Dotenv)
}

// SplitCommand turns a configured command string into an argument vector
func SplitCommand(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	return argv, nil
}

// TrainerCommand resolves the full trainer invocation for the profile
func (p Profile) TrainerCommand() ([]string, error) {
	argv, err := SplitCommand(p.Trainer)
	if err != nil {
		return nil, err
	}
	return append(argv, p.Train.TrainerArgs()...), nil
}

// InferenceCommand resolves the inference invocation. Inference always
// runs against a checkpoint.
func (p Profile) InferenceCommand(checkpoint, output string) ([]string, error) {
	if len(checkpoint) == 0 {
		return nil, errors.New("inference requires a checkpoint")
	}
	argv, err := SplitCommand(p.Inference)
	if err != nil {
		return nil, err
	}
	argv = append(argv, CheckpointFlag, checkpoint)
	if len(output) > 0 {
		argv = append(argv, "--output", output)
	}
	return argv, nil
}

// Run launches argv synchronously with stdio passed through. The external
// program's non-zero exit comes back as *ExitError; a failure to launch
// at all comes back unchanged.
func Run(argv []string, dir string) error {
	logger.InfoPrintf("running: %v", argv)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var xerr *exec.ExitError
	if errors.As(err, &xerr) {
		return &ExitError{Code: xerr.ExitCode()}
	}
	return err
}
