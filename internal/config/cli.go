// Package config holds the command line surface of nativeinput.
package config

import "github.com/Alia5/nativeinput/internal/cmd"

// Log configures logging for every command.
type Log struct {
	Level     string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"NATIVEINPUT_LOG_LEVEL"`
	File      string `help:"Write logs to this file instead of the console" env:"NATIVEINPUT_LOG_FILE"`
	EventFile string `help:"Write every dispatched input event to this file" env:"NATIVEINPUT_LOG_EVENT_FILE"`
}

// CLI is the root kong command.
type CLI struct {
	ConfigFile string `name:"config" help:"Configuration file (.json, .yaml, .yml or .toml)" env:"NATIVEINPUT_CONFIG"`
	Log        Log    `embed:"" prefix:"log."`

	Replay  cmd.Replay        `cmd:"" help:"Play a scenario file against a simulated desktop and report every frame"`
	Watch   cmd.Watch         `cmd:"" help:"Run a live frame loop and show pointer and keyboard state"`
	Devices cmd.Devices       `cmd:"" help:"List the input devices of the driver"`
	Config  cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
