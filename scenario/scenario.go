// Package scenario replays scripted input against a simulated desktop. A
// scenario describes a screen, a window and a list of frames; each frame
// changes mouse policy, moves the window, moves the physical cursor or
// feeds discrete events, then runs exactly one frame tick and optionally
// checks what the devices report.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/nativeinput/geom"
)

// ErrFormat is returned for files whose extension names no known format.
var ErrFormat = errors.New("unsupported scenario format")

type Scenario struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	// Screen defaults to 1920x1080.
	Screen geom.Size `json:"screen" yaml:"screen" toml:"screen"`
	// Window is the client rectangle in screen space. Defaults to the whole
	// screen.
	Window geom.Rect `json:"window" yaml:"window" toml:"window"`
	// Cursor is the initial OS cursor position. Defaults to the window centre.
	Cursor *geom.Point `json:"cursor,omitempty" yaml:"cursor,omitempty" toml:"cursor,omitempty"`
	Mouse  Policy      `json:"mouse" yaml:"mouse" toml:"mouse"`
	Frames []Frame     `json:"frames" yaml:"frames" toml:"frames"`
}

// Policy holds optional mouse policy changes. Nil fields are left alone.
type Policy struct {
	Visible  *bool `json:"visible,omitempty" yaml:"visible,omitempty" toml:"visible,omitempty"`
	Clipped  *bool `json:"clipped,omitempty" yaml:"clipped,omitempty" toml:"clipped,omitempty"`
	Infinite *bool `json:"infinite,omitempty" yaml:"infinite,omitempty" toml:"infinite,omitempty"`
}

// Frame is applied in field order: policy, window, focus, cursor motion,
// buttons, wheel, keys, typed text. Then one frame tick runs and Expect is
// checked.
type Frame struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	// Repeat runs the frame this many times; zero means once.
	Repeat int `json:"repeat,omitempty" yaml:"repeat,omitempty" toml:"repeat,omitempty"`

	Policy Policy    `json:"mouse,omitempty" yaml:"mouse,omitempty" toml:"mouse,omitempty"`
	Window *WindowOp `json:"window,omitempty" yaml:"window,omitempty" toml:"window,omitempty"`
	Focus  *bool     `json:"focus,omitempty" yaml:"focus,omitempty" toml:"focus,omitempty"`
	// Move is a physical cursor motion; it stops at the screen and clip edges.
	Move *geom.Point `json:"move,omitempty" yaml:"move,omitempty" toml:"move,omitempty"`

	Down    []string `json:"down,omitempty" yaml:"down,omitempty" toml:"down,omitempty"`
	Up      []string `json:"up,omitempty" yaml:"up,omitempty" toml:"up,omitempty"`
	Wheel   int      `json:"wheel,omitempty" yaml:"wheel,omitempty" toml:"wheel,omitempty"`
	KeyDown []string `json:"keyDown,omitempty" yaml:"keyDown,omitempty" toml:"keyDown,omitempty"`
	KeyUp   []string `json:"keyUp,omitempty" yaml:"keyUp,omitempty" toml:"keyUp,omitempty"`
	// Type feeds one character event per rune.
	Type string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`

	Expect *Expect `json:"expect,omitempty" yaml:"expect,omitempty" toml:"expect,omitempty"`
}

// WindowOp changes the simulated window. Operations run in field order.
type WindowOp struct {
	BeginSizeMove bool        `json:"beginSizeMove,omitempty" yaml:"beginSizeMove,omitempty" toml:"beginSizeMove,omitempty"`
	Move          *geom.Point `json:"move,omitempty" yaml:"move,omitempty" toml:"move,omitempty"`
	Resize        *geom.Size  `json:"resize,omitempty" yaml:"resize,omitempty" toml:"resize,omitempty"`
	EndSizeMove   bool        `json:"endSizeMove,omitempty" yaml:"endSizeMove,omitempty" toml:"endSizeMove,omitempty"`
	Close         bool        `json:"close,omitempty" yaml:"close,omitempty" toml:"close,omitempty"`
}

// Expect lists what the devices must report during the frame. Nil fields
// are not checked.
type Expect struct {
	Position   *geom.Point `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	Delta      *geom.Point `json:"delta,omitempty" yaml:"delta,omitempty" toml:"delta,omitempty"`
	Native     *geom.Point `json:"native,omitempty" yaml:"native,omitempty" toml:"native,omitempty"`
	Buttons    *string     `json:"buttons,omitempty" yaml:"buttons,omitempty" toml:"buttons,omitempty"`
	Wheel      *int        `json:"wheel,omitempty" yaml:"wheel,omitempty" toml:"wheel,omitempty"`
	DeltaWheel *int        `json:"deltaWheel,omitempty" yaml:"deltaWheel,omitempty" toml:"deltaWheel,omitempty"`
	Pressed    []string    `json:"pressed,omitempty" yaml:"pressed,omitempty" toml:"pressed,omitempty"`
	Released   []string    `json:"released,omitempty" yaml:"released,omitempty" toml:"released,omitempty"`
	Chars      *string     `json:"chars,omitempty" yaml:"chars,omitempty" toml:"chars,omitempty"`
	// CursorVisible checks the OS cursor, not the requested visibility.
	CursorVisible *bool `json:"cursorVisible,omitempty" yaml:"cursorVisible,omitempty" toml:"cursorVisible,omitempty"`
}

// FormatOf returns "yaml", "toml" or "json" for path's extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	case ".json":
		return "json", nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Load reads and decodes the scenario at path.
func Load(path string) (*Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode parses data in the given format. Unknown fields are rejected in
// YAML and JSON.
func Decode(data []byte, format string) (*Scenario, error) {
	var s Scenario
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return &s, nil
}
