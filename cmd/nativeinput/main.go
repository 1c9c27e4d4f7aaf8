package main

import (
	"os"
	"strings"

	"github.com/Alia5/nativeinput/internal/config"
	"github.com/Alia5/nativeinput/internal/configpaths"
	"github.com/Alia5/nativeinput/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("nativeinput"),
		kong.Description("Frame-synchronized native mouse and keyboard input"),
		kong.UsageOnError(),
		// Flags and env override values from the first config file found.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var events log.EventLogger
	switch {
	case cli.Log.EventFile != "":
		f, err := os.OpenFile(cli.Log.EventFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open event log file", "file", cli.Log.EventFile, "error", err)
			events = log.NewEvent(nil)
		} else {
			events = log.NewEvent(f)
			closeFiles = append(closeFiles, f)
		}
	case cli.Log.Level == "trace":
		events = log.NewEvent(os.Stdout)
	default:
		events = log.NewEvent(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(events, (*log.EventLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("NATIVEINPUT_CONFIG")
}
