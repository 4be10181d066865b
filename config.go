package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	core "github.com/hiero-transformer/hierohpc/core"
)

type ConfigFlags struct {
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
	Profile string `short:"p" long:"profile" description:"profile name" default:"default"`
}

type ConfigCommand struct {
	Config ConfigFlags       `group:"Configuration Options"`
	Init   ConfigInitCommand `command:"init"`
	Show   ConfigShowCommand `command:"show"`
	List   ConfigListCommand `command:"list"`
	Use    ConfigUseCommand  `command:"use"`
}

type ConfigInitCommand struct {
	Config ConfigFlags `group:"Configuration Options" hidden:"true"`
	File   string      `short:"f" long:"file" description:"seed the profile from a YAML file"`
}

type ConfigShowCommand struct {
	Config ConfigFlags `group:"Configuration Options" hidden:"true"`
}

type ConfigListCommand struct {
	Config ConfigFlags `group:"Configuration Options" hidden:"true"`
}

type ConfigUseCommand struct {
	Config ConfigFlags `group:"Configuration Options" hidden:"true"`
}

var configCommand ConfigCommand

func (x *ConfigCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	return nil
}

func (x *ConfigInitCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	profile := core.DefaultProfile()
	if len(x.File) > 0 {
		if val, err := core.LoadProfileFile(x.File); err != nil {
			return errors.New("config: " + err.Error())
		} else {
			profile = val
		}
	}
	config, _ := core.ReadConfig()
	if config == nil {
		config = make(core.Config)
	}
	config[x.Config.Profile] = profile
	if err := core.WriteConfig(config); err != nil {
		return errors.New("config: unable to write config file")
	}
	return nil
}

func (x *ConfigShowCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	profile, err := core.GetProfile(x.Config.Profile)
	if err != nil {
		return errors.New("config: " + err.Error())
	}
	out, err := yaml.Marshal(profile)
	if err != nil {
		return errors.New("config: " + err.Error())
	}
	fmt.Print(string(out))
	return nil
}

func (x *ConfigListCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	config, _ := core.ReadConfig()
	for key := range config {
		fmt.Println(key)
	}
	return nil
}

func (x *ConfigUseCommand) Execute(args []string) error {
	if x.Config.Help {
		return core.CreateHelpErr()
	}
	config, _ := core.ReadConfig()
	if _, ok := config[x.Config.Profile]; ok {
		return core.WriteConfigTarget(x.Config.Profile)
	}
	return errors.New(x.Config.Profile + " profile does not exist")
}

func init() {
	parser.AddCommand("config",
		"launch profile configuration",
		"The config command manages stored launch profiles",
		&configCommand)
}
