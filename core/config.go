package core

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	HieroHpcConfigPath      = "/.config/hierohpc/"
	HieroHpcConfigFilename  = "config.json"
	HieroHpcTargetFilename  = "target"
	HieroHpcConfigFilePerms = 0600
)

const HieroHpcConfigEnv = "HIEROHPC_CONFIG"

// Config maps profile names to stored launch profiles
/*
{
	"default": {
		"job": {"name": "train_hiero", "queue": "gpu", ...},
		"env": {"init": "...", "name": "hiero"},
		"workdir": "...",
		"trainer": "python3 train_minimal.py",
		"train": {"epochs": 20, "batch_size": 16, "eval_period": 1000}
	}
}
*/
type Config map[string]Profile

func fileExist(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Build path for config file
// Set from environment or use backup
// Use current directory as last resort
func getConfigPath() string {
	configPath := os.Getenv(HieroHpcConfigEnv)
	if len(configPath) > 0 {
		return configPath
	}
	backupPath := os.Getenv("HOME") + HieroHpcConfigPath
	if err := os.MkdirAll(backupPath, 0744); err != nil {
		return HieroHpcConfigFilename
	}
	return backupPath + HieroHpcConfigFilename
}

func getTargetPath() string {
	backupPath := os.Getenv("HOME") + HieroHpcConfigPath
	if err := os.MkdirAll(backupPath, 0744); err != nil {
		return HieroHpcTargetFilename
	}
	return backupPath + HieroHpcTargetFilename
}

func WriteConfig(config Config) error {
	configFile := getConfigPath()
	file, err := json.MarshalIndent(config, "", "	")
	if err != nil {
		return err
	}
	// Ensure config file uses proper permissions
	os.Chmod(configFile, HieroHpcConfigFilePerms)
	return ioutil.WriteFile(configFile, file, HieroHpcConfigFilePerms)
}

func ReadConfig() (Config, error) {
	filename := getConfigPath()
	if !fileExist(filename) {
		return Config{}, errors.New("cannot read hierohpc config")
	}
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	var config Config
	json.Unmarshal(bytes, &config)
	// Check if any profile was found in config file
	if len(config) == 0 {
		return Config{}, errors.New("invalid hierohpc config")
	}
	return config, nil
}

// WriteConfigTarget records the profile name used when none is given
func WriteConfigTarget(name string) error {
	return ioutil.WriteFile(getTargetPath(), []byte(name), HieroHpcConfigFilePerms)
}

func ReadConfigTarget() (string, error) {
	bytes, err := ioutil.ReadFile(getTargetPath())
	if err != nil {
		return "", err
	}
	if len(bytes) == 0 {
		return "", errors.New("empty hierohpc target")
	}
	return string(bytes), nil
}

// GetProfile resolves a named profile from the config file. The built-in
// default profile backs the "default" name when no config file exists yet.
func GetProfile(name string) (Profile, error) {
	config, err := ReadConfig()
	if err != nil {
		if name == "default" {
			return DefaultProfile(), nil
		}
		return Profile{}, err
	}
	if profile, ok := config[name]; ok {
		return profile, nil
	}
	if name == "default" {
		return DefaultProfile(), nil
	}
	return Profile{}, errors.New("cannot find profile " + name)
}

// LoadProfileFile reads a standalone YAML profile document. Fields left
// out of the document keep the built-in defaults.
func LoadProfileFile(filename string) (Profile, error) {
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return Profile{}, err
	}
	profile := DefaultProfile()
	if err := yaml.Unmarshal(bytes, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
