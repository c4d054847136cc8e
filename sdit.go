package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

const (
	version = "v0.1"
)

// logLevelFlag implements pflag.Value for zerolog.Level
type logLevelFlag struct {
	level zerolog.Level
}

var _ pflag.Value = (*logLevelFlag)(nil)

func (f *logLevelFlag) String() string {
	return f.level.String()
}

func (f *logLevelFlag) Set(value string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(value))
	if err != nil {
		return err
	}
	f.level = level
	return nil
}

func (f *logLevelFlag) Type() string {
	return "level"
}

func (f *logLevelFlag) Get() zerolog.Level {
	return f.level
}

func main() {
	fmt.Printf("SayDos Disk Image Tool %s\n", version)
	fmt.Printf("Copyright (c) 2025 Andreas Signer <asigner@gmail.com>\n")
	fmt.Printf("https://github.com/asig/sdit\n")

	if err := newRootCmd(afero.NewOsFs(), os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
