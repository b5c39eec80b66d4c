package cli

import "time"

// Options holds the settings shared by every command.
type Options struct {
	Dir         string
	Redis       string
	RedisPrefix string
	RedisTTL    time.Duration
	Kind        string
	MaxSteps    int // 0 keeps the engine default, negative removes the bound
	TapePadding int
	LogLevel    string
	Debug       bool
}

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Options

	// Machine names a machine of the configured source. File reads a
	// description straight from disk instead.
	Machine string
	File    string

	// Input is used when HasInput is set; otherwise input is prompted for.
	Input    string
	HasInput bool

	JSON   bool
	Format string
	Quiet  bool
}
