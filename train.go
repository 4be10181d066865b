package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	core "github.com/hiero-transformer/hierohpc/core"
	logger "github.com/hiero-transformer/hierohpc/logger"
)

type TrainCommand struct {
	Help       bool   `short:"h" long:"help" description:"Show this help message"`
	Profile    string `short:"p" long:"profile" description:"launch profile" default:"default"`
	File       string `short:"f" long:"file" description:"read launch profile from YAML file"`
	Epochs     int    `long:"epochs" description:"number of training epochs"`
	BatchSize  int    `long:"batch-size" description:"training batch size"`
	EvalPeriod int    `long:"eval-period" description:"steps between evaluations"`
	Checkpoint string `long:"checkpoint" description:"checkpoint identifier to resume from"`
	Fresh      bool   `long:"fresh" description:"ignore the profile checkpoint and start fresh"`
	DryRun     bool   `short:"n" long:"dry-run" description:"print the assembled command without running it"`
}

var trainCommand TrainCommand

// loadProfile resolves the launch profile: an explicit YAML file wins,
// otherwise the named profile from the config file, falling back to the
// recorded target profile when none is named.
func loadProfile(name, file string) (core.Profile, error) {
	if len(file) > 0 {
		return core.LoadProfileFile(file)
	}
	if name == "default" {
		if target, err := core.ReadConfigTarget(); err == nil {
			name = target
		}
	}
	return core.GetProfile(name)
}

func (x *TrainCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	profile, err := loadProfile(x.Profile, x.File)
	if err != nil {
		return errors.New("train: " + err.Error())
	}
	if x.Epochs > 0 {
		profile.Train.Epochs = x.Epochs
	}
	if x.BatchSize > 0 {
		profile.Train.BatchSize = x.BatchSize
	}
	if x.EvalPeriod > 0 {
		profile.Train.EvalPeriod = x.EvalPeriod
	}
	if len(x.Checkpoint) > 0 {
		profile.Train.Checkpoint = x.Checkpoint
	}
	if x.Fresh {
		profile.Train.Checkpoint = ""
	}
	argv, err := profile.TrainerCommand()
	if err != nil {
		return errors.New("train: " + err.Error())
	}
	if x.DryRun {
		fmt.Println(strings.Join(argv, " "))
		return nil
	}
	if err := core.LoadEnv(profile.Env); err != nil {
		return errors.New("train: " + err.Error())
	}
	logger.DebugObj("train profile", profile)
	return core.Run(argv, os.ExpandEnv(profile.Workdir))
}

func init() {
	parser.AddCommand("train",
		"run the trainer",
		"Assemble the training command line and run it to completion",
		&trainCommand)
}
