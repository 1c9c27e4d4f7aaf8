package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/nativeinput/internal/log"
	"github.com/Alia5/nativeinput/scenario"
)

type Replay struct {
	File   string `arg:"" help:"Scenario file (.yaml, .yml, .toml or .json)" type:"existingfile"`
	Format string `help:"Report format; auto prints text on a terminal and json otherwise" enum:"auto,text,json,yaml" default:"auto" env:"NATIVEINPUT_REPLAY_FORMAT"`
	Quiet  bool   `help:"Print nothing but the result" env:"NATIVEINPUT_REPLAY_QUIET"`
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger, events log.EventLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.replay(ctx, os.Stdout, term.IsTerminal(int(os.Stdout.Fd())), logger, events)
}

func (r *Replay) replay(ctx context.Context, w io.Writer, tty bool, logger *slog.Logger, events log.EventLogger) error {
	s, err := scenario.Load(r.File)
	if err != nil {
		return err
	}
	logger.Info("Replaying scenario", "name", s.Name, "file", r.File, "frames", len(s.Frames))

	reports, runErr := scenario.Run(ctx, s, &scenario.Options{Logger: logger, OnEvent: events.Log})

	if !r.Quiet {
		format := r.Format
		if format == "auto" || format == "" {
			format = "json"
			if tty {
				format = "text"
			}
		}
		if err := writeReports(w, format, reports); err != nil {
			return fmt.Errorf("write reports: %w", err)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, scenario.ErrExpectation) {
			logger.Error("Scenario failed", "name", s.Name, "error", runErr)
		}
		return runErr
	}
	logger.Info("Scenario passed", "name", s.Name, "frames", len(reports))
	return nil
}

func writeReports(w io.Writer, format string, reports []scenario.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(reports)
	case "text":
		if _, err := fmt.Fprintf(w, "%-5s %-12s %-12s %-10s %-6s %-6s %s\n",
			"FRAME", "POSITION", "DELTA", "BUTTONS", "WHEEL", "CURSOR", "KEYS"); err != nil {
			return err
		}
		for _, r := range reports {
			cursor := "hidden"
			if r.CursorVisible {
				cursor = "shown"
			}
			keys := strings.Join(r.Keys, ",")
			if r.Chars != "" {
				keys += fmt.Sprintf(" %q", r.Chars)
			}
			if _, err := fmt.Fprintf(w, "%-5d %-12s %-12s %-10s %-6d %-6s %s\n",
				r.Frame, r.Mouse.Position, r.Mouse.Delta, r.Mouse.Buttons, r.Mouse.Wheel, cursor, strings.TrimSpace(keys)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
