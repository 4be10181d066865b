package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	core "github.com/hiero-transformer/hierohpc/core"
)

type InferCommand struct {
	Help       bool   `short:"h" long:"help" description:"Show this help message"`
	Profile    string `short:"p" long:"profile" description:"launch profile" default:"default"`
	File       string `short:"f" long:"file" description:"read launch profile from YAML file"`
	Checkpoint string `short:"c" long:"checkpoint" description:"checkpoint identifier to evaluate"`
	Output     string `short:"o" long:"output" description:"predictions output file" default:"predictions.txt"`
	DryRun     bool   `short:"n" long:"dry-run" description:"print the assembled command without running it"`
}

var inferCommand InferCommand

func (x *InferCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	profile, err := loadProfile(x.Profile, x.File)
	if err != nil {
		return errors.New("infer: " + err.Error())
	}
	checkpoint := x.Checkpoint
	if len(checkpoint) == 0 {
		checkpoint = profile.Train.Checkpoint
	}
	argv, err := profile.InferenceCommand(checkpoint, x.Output)
	if err != nil {
		return errors.New("infer: " + err.Error())
	}
	if x.DryRun {
		fmt.Println(strings.Join(argv, " "))
		return nil
	}
	if err := core.LoadEnv(profile.Env); err != nil {
		return errors.New("infer: " + err.Error())
	}
	return core.Run(argv, os.ExpandEnv(profile.Workdir))
}

func init() {
	parser.AddCommand("infer",
		"run inference against a checkpoint",
		"Assemble the inference command line and run it to completion",
		&inferCommand)
}
