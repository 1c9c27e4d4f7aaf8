package mouse

import "github.com/Alia5/nativeinput/geom"

// State is a frame-consistent copy of everything the mouse exposes.
type State struct {
	Position     geom.Point `json:"position" yaml:"position"`
	PrevPosition geom.Point `json:"prevPosition" yaml:"prevPosition"`
	Delta        geom.Point `json:"delta" yaml:"delta"`

	Buttons        Button `json:"buttons" yaml:"buttons"`
	PrevButtons    Button `json:"prevButtons" yaml:"prevButtons"`
	ChangedButtons Button `json:"changedButtons" yaml:"changedButtons"`

	Wheel      int `json:"wheel" yaml:"wheel"`
	PrevWheel  int `json:"prevWheel" yaml:"prevWheel"`
	DeltaWheel int `json:"deltaWheel" yaml:"deltaWheel"`

	// Native is the OS cursor position in screen space as read by the last
	// pre-frame sync; PrevNative is the anchor the next delta is measured from.
	Native     geom.Point `json:"native" yaml:"native"`
	PrevNative geom.Point `json:"prevNative" yaml:"prevNative"`

	ClientRect geom.Rect `json:"clientRect" yaml:"clientRect"`
	Visible    bool      `json:"visible" yaml:"visible"`
	Clipped    bool      `json:"clipped" yaml:"clipped"`
	Infinite   bool      `json:"infinite" yaml:"infinite"`
	Sizing     bool      `json:"sizing" yaml:"sizing"`
	Attached   bool      `json:"attached" yaml:"attached"`
}

// IsDown reports whether every bit of b is held in s.
func (s State) IsDown(b Button) bool { return s.Buttons&b == b }
