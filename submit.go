package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	core "github.com/hiero-transformer/hierohpc/core"
	logger "github.com/hiero-transformer/hierohpc/logger"
)

type SubmitCommand struct {
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
	Profile string `short:"p" long:"profile" description:"launch profile" default:"default"`
	File    string `short:"f" long:"file" description:"read launch profile from YAML file"`
	DryRun  bool   `short:"n" long:"dry-run" description:"print the job script without submitting it"`
}

var submitCommand SubmitCommand

func (x *SubmitCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	profile, err := loadProfile(x.Profile, x.File)
	if err != nil {
		return errors.New("submit: " + err.Error())
	}
	script, err := core.RenderJobScript(profile)
	if err != nil {
		return errors.New("submit: " + err.Error())
	}
	if x.DryRun {
		fmt.Print(script)
		return nil
	}
	qsub, err := exec.LookPath("qsub")
	if err != nil {
		return errors.New("submit: cannot find qsub in PATH")
	}
	file, err := os.CreateTemp("", "hierohpc-*.pbs")
	if err != nil {
		return errors.New("submit: " + err.Error())
	}
	defer os.Remove(file.Name())
	if _, err := file.WriteString(script); err != nil {
		file.Close()
		return errors.New("submit: " + err.Error())
	}
	file.Close()

	logger.DebugPrintf("submitting %s", file.Name())
	cmd := exec.Command(qsub, file.Name())
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		var xerr *exec.ExitError
		if errors.As(err, &xerr) {
			return &core.ExitError{Code: xerr.ExitCode()}
		}
		return errors.New("submit: " + err.Error())
	}
	jobID := strings.TrimSpace(string(out))
	fmt.Printf("Your job %s (\"%s\") has been submitted\n", jobID, profile.Job.Name)
	return nil
}

func init() {
	parser.AddCommand("submit",
		"submit the batch job",
		"Render the PBS job script for a launch profile and submit it with qsub",
		&submitCommand)
}
