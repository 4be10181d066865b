package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	core "github.com/hiero-transformer/hierohpc/core"
)

var parser = flags.NewNamedParser("hierohpc", flags.PassDoubleDash|flags.IgnoreUnknown)

func printHelp(parser *flags.Parser) {
	// Print help for active command
	parser.Command = parser.Command.Active
	var b bytes.Buffer
	parser.WriteHelp(&b)
	fmt.Println(b.String())
}

func main() {
	var err error
	var exitErr *core.ExitError
	args := []string{}
	if args, err = parser.ParseArgs(os.Args[1:]); err != nil {
		goto errHandler
	}
	os.Exit(0)
errHandler:
	// External programs terminate the launcher with their own status
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	switch flagsErr := err.(type) {
	case *flags.Error:
		if flagsErr.Type == flags.ErrHelp ||
			flagsErr.Type == flags.ErrCommandRequired ||
			flagsErr.Type == flags.ErrRequired {
			printHelp(parser)
			os.Exit(0)
		} else if flagsErr.Type == flags.ErrUnknownCommand {
			fmt.Printf("`%v' not supported\n\n\n", args[0])
			if parser.Command.Active != nil {
				printHelp(parser)
			}
		} else if flagsErr.Type == flags.ErrMarshal {
			fmt.Print("\n\nInvalid syntax\n\n\n")
			printHelp(parser)
			os.Exit(1)
		}
		fmt.Println(flagsErr.Error())
		os.Exit(1)

	default:
		fmt.Println(flagsErr.Error())
		os.Exit(1)

	}
}
