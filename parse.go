package main

import (
	"encoding/json"
	"errors"
	"fmt"

	core "github.com/hiero-transformer/hierohpc/core"
)

type ParseCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
	Args struct {
		JobScript string `positional-arg-name:"jobscript" description:"PBS job script"`
	} `positional-args:"true" required:"1"`
}

var parseCommand ParseCommand

func (x *ParseCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	jobScript, err := core.ParseJobScript(x.Args.JobScript)
	if err != nil {
		return errors.New("parse: " + err.Error())
	}
	spec, err := core.DecodeDirectives(jobScript.Args)
	if err != nil {
		return errors.New("parse: " + err.Error())
	}
	out, err := json.MarshalIndent(spec, "", "	")
	if err != nil {
		return errors.New("parse: " + err.Error())
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	parser.AddCommand("parse",
		"decode job script directives",
		"Read a PBS job script and print its decoded directives as JSON",
		&parseCommand)
}
