package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"sigs.k8s.io/yaml"
)

const (
	EnvSourceOverride = "PAPYRUSCS_SOURCE"
	EnvOutputOverride = "PAPYRUSCS_OUTPUT"
	EnvHostOS         = "OSTYPE"

	DefaultSourceDir     = "papyruscs"
	DefaultOutputDir     = "papyrusbin"
	DefaultTool          = "dotnet"
	DefaultProject       = "PapyrusCs"
	DefaultConfiguration = "Release"
)

// Settings is the on-disk configuration stored in ~/.papyrusctl/config.yaml.
type Settings struct {
	SourceProjectPath string `json:"sourceProjectPath,omitempty"`
	OutputPath        string `json:"outputPath,omitempty"`
	VaultAddr         string `json:"vaultAddr,omitempty"`
}

func (s *Settings) WriteToDisk() error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(DotPath(), 0700); err != nil {
		return err
	}
	return os.WriteFile(SettingsPath(), data, 0600)
}

func ReadSettings() (*Settings, error) {
	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSettings is like ReadSettings but returns empty settings when the file
// does not exist yet.
func LoadSettings() (*Settings, error) {
	s, err := ReadSettings()
	if errors.Is(err, os.ErrNotExist) {
		return &Settings{}, nil
	}
	return s, err
}

func SettingsPath() string {
	return filepath.Join(DotPath(), "config.yaml")
}

func DotPath() string {
	path, err := homedir.Expand("~/.papyrusctl")
	if err != nil {
		panic(err)
	}
	return path
}

// Config holds everything the launcher needs for one run. It is built once
// from the environment and passed in; the launcher does not read the
// environment itself.
type Config struct {
	HostOS  string
	BaseDir string

	// SourceProjectPathOverride replaces DefaultSourceProjectPath when set.
	SourceProjectPathOverride string
	DefaultSourceProjectPath  string
	OutputPath                string

	Tool          string
	Project       string
	Configuration string
}

// NewConfig builds a Config from the process environment. Paths that are not
// overridden are resolved relative to the directory holding the launcher
// executable.
func NewConfig(settings *Settings) (*Config, error) {
	if settings == nil {
		settings = &Settings{}
	}
	baseDir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	conf := &Config{
		HostOS:                   HostIdentifier(),
		BaseDir:                  baseDir,
		DefaultSourceProjectPath: filepath.Join(baseDir, DefaultSourceDir),
		OutputPath:               filepath.Join(baseDir, DefaultOutputDir),
		Tool:                     DefaultTool,
		Project:                  DefaultProject,
		Configuration:            DefaultConfiguration,
	}
	if settings.SourceProjectPath != "" {
		conf.SourceProjectPathOverride = settings.SourceProjectPath
	}
	if settings.OutputPath != "" {
		conf.OutputPath = settings.OutputPath
	}
	if v, ok := os.LookupEnv(EnvSourceOverride); ok && v != "" {
		conf.SourceProjectPathOverride = v
	}
	if v, ok := os.LookupEnv(EnvOutputOverride); ok && v != "" {
		conf.OutputPath = v
	}
	return conf, nil
}

// HostIdentifier prefers $OSTYPE, which distinguishes Cygwin and MSYS shells
// on Windows, and falls back to runtime.GOOS.
func HostIdentifier() string {
	if v := os.Getenv(EnvHostOS); v != "" {
		return v
	}
	return runtime.GOOS
}

func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWorkingDirectory, err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWorkingDirectory, err)
	}
	return filepath.Dir(exe), nil
}
