package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	core "github.com/hiero-transformer/hierohpc/core"
	dataset "github.com/hiero-transformer/hierohpc/dataset"
)

type ConvertCommand struct {
	Help     bool                   `short:"h" long:"help" description:"Show this help message"`
	Json2Txt ConvertJson2TxtCommand `command:"json2txt" description:"convert a JSON corpus to paired text files"`
	Txt2Json ConvertTxt2JsonCommand `command:"txt2json" description:"convert paired text files to a JSON corpus"`
	Separate ConvertSeparateCommand `command:"separate" description:"apply character separation to a text file"`
}

type ConvertJson2TxtCommand struct {
	Help   bool   `short:"h" long:"help" description:"Show this help message"`
	Source string `long:"source" description:"source language type" default:"egy" choice:"egy" choice:"tnt"`
	Target string `long:"target" description:"target language type" default:"tnt" choice:"en" choice:"de" choice:"tnt" choice:"lkey" choice:"wordClass"`
	Args   struct {
		JsonFile string `positional-arg-name:"jsonfile" description:"input JSON corpus"`
	} `positional-args:"true" required:"1"`
}

type ConvertTxt2JsonCommand struct {
	Help   bool   `short:"h" long:"help" description:"Show this help message"`
	Source string `long:"source" description:"source text file" required:"true"`
	Target string `long:"target" description:"target text file" required:"true"`
	Types  string `long:"types" description:"comma-separated source and target types (e.g. egy,tnt)" required:"true"`
	Output string `long:"output" description:"output JSON file (default: next to the source file)"`
}

type ConvertSeparateCommand struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
	Args struct {
		InputFile string `positional-arg-name:"inputfile" description:"text file to process"`
	} `positional-args:"true" required:"1"`
}

var convertCommand ConvertCommand

func (x *ConvertCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	return nil
}

func (x *ConvertJson2TxtCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	sourcePath, targetPath, stats, err := dataset.ConvertJSONToText(
		x.Args.JsonFile, x.Source, x.Target)
	if err != nil {
		return errors.New("json2txt: " + err.Error())
	}
	fmt.Printf("Source file: %s\n", sourcePath)
	fmt.Printf("Target file: %s\n", targetPath)
	fmt.Printf("Total entries: %d\n", stats.Total)
	fmt.Printf("Processed entries: %d\n", stats.Processed)
	fmt.Printf("Skipped entries: %d\n", stats.Skipped)
	return nil
}

func (x *ConvertTxt2JsonCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	types := strings.Split(x.Types, ",")
	if len(types) != 2 {
		return errors.New("txt2json: --types must contain exactly two comma-separated values (e.g. egy,tnt)")
	}
	output := x.Output
	if len(output) == 0 {
		sourceBase := strings.TrimSuffix(filepath.Base(x.Source), filepath.Ext(x.Source))
		targetBase := strings.TrimSuffix(filepath.Base(x.Target), filepath.Ext(x.Target))
		output = filepath.Join(filepath.Dir(x.Source),
			sourceBase+"_to_"+targetBase+".json")
	}
	count, err := dataset.ConvertTextToJSON(x.Source, x.Target,
		strings.TrimSpace(types[0]), strings.TrimSpace(types[1]), output)
	if err != nil {
		return errors.New("txt2json: " + err.Error())
	}
	fmt.Printf("Output file: %s\n", output)
	fmt.Printf("Total entries: %d\n", count)
	return nil
}

func (x *ConvertSeparateCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	outputPath, count, err := dataset.SeparateFile(x.Args.InputFile)
	if err != nil {
		return errors.New("separate: " + err.Error())
	}
	fmt.Printf("Processed %d lines\n", count)
	fmt.Printf("Output saved to: %s\n", outputPath)
	return nil
}

func init() {
	parser.AddCommand("convert",
		"corpus conversions",
		"Convert the hieroglyph corpus between JSON and paired text formats",
		&convertCommand)
}
