package main

import (
	"errors"
	"fmt"
	"io/ioutil"

	core "github.com/hiero-transformer/hierohpc/core"
)

type ScriptCommand struct {
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
	Profile string `short:"p" long:"profile" description:"launch profile" default:"default"`
	File    string `short:"f" long:"file" description:"read launch profile from YAML file"`
	Output  string `short:"o" long:"output" description:"write the job script to a file instead of stdout"`
}

var scriptCommand ScriptCommand

func (x *ScriptCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	profile, err := loadProfile(x.Profile, x.File)
	if err != nil {
		return errors.New("script: " + err.Error())
	}
	script, err := core.RenderJobScript(profile)
	if err != nil {
		return errors.New("script: " + err.Error())
	}
	if len(x.Output) > 0 {
		return ioutil.WriteFile(x.Output, []byte(script), 0644)
	}
	fmt.Print(script)
	return nil
}

func init() {
	parser.AddCommand("script",
		"render the batch job script",
		"Render the PBS job script for a launch profile without submitting it",
		&scriptCommand)
}
