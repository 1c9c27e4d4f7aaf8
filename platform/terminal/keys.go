package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Alia5/nativeinput/device/keyboard"
	"github.com/Alia5/nativeinput/device/mouse"
)

var specialKeys = map[tcell.Key]keyboard.Key{
	tcell.KeyEnter:      keyboard.KeyEnter,
	tcell.KeyTab:        keyboard.KeyTab,
	tcell.KeyBackspace:  keyboard.KeyBackspace,
	tcell.KeyBackspace2: keyboard.KeyBackspace,
	tcell.KeyEscape:     keyboard.KeyEscape,
	tcell.KeyUp:         keyboard.KeyUp,
	tcell.KeyDown:       keyboard.KeyDown,
	tcell.KeyLeft:       keyboard.KeyLeft,
	tcell.KeyRight:      keyboard.KeyRight,
	tcell.KeyHome:       keyboard.KeyHome,
	tcell.KeyEnd:        keyboard.KeyEnd,
	tcell.KeyPgUp:       keyboard.KeyPageUp,
	tcell.KeyPgDn:       keyboard.KeyPageDown,
	tcell.KeyInsert:     keyboard.KeyInsert,
	tcell.KeyDelete:     keyboard.KeyDelete,
	tcell.KeyPause:      keyboard.KeyPause,
	tcell.KeyF1:         keyboard.KeyF1,
	tcell.KeyF2:         keyboard.KeyF2,
	tcell.KeyF3:         keyboard.KeyF3,
	tcell.KeyF4:         keyboard.KeyF4,
	tcell.KeyF5:         keyboard.KeyF5,
	tcell.KeyF6:         keyboard.KeyF6,
	tcell.KeyF7:         keyboard.KeyF7,
	tcell.KeyF8:         keyboard.KeyF8,
	tcell.KeyF9:         keyboard.KeyF9,
	tcell.KeyF10:        keyboard.KeyF10,
	tcell.KeyF11:        keyboard.KeyF11,
	tcell.KeyF12:        keyboard.KeyF12,
}

// charForKey is the character a window system would compose for the
// non-rune keys that produce one.
var charForKey = map[keyboard.Key]rune{
	keyboard.KeyEnter:     '\r',
	keyboard.KeyTab:       '\t',
	keyboard.KeyBackspace: '\b',
	keyboard.KeyEscape:    0x1b,
}

// translateKey maps a tcell key event to a key code and, when the key
// composes one, a character.
func translateKey(ev *tcell.EventKey) (keyboard.Key, rune, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		return keyboard.KeyForChar(r), r, true
	}
	k, ok := specialKeys[ev.Key()]
	if !ok {
		return keyboard.KeyNone, 0, false
	}
	return k, charForKey[k], true
}

var buttonMap = []struct {
	t tcell.ButtonMask
	b mouse.Button
}{
	{tcell.Button1, mouse.ButtonLeft},
	{tcell.Button2, mouse.ButtonRight},
	{tcell.Button3, mouse.ButtonMiddle},
}

func buttonsOf(m tcell.ButtonMask) mouse.Button {
	var out mouse.Button
	for _, e := range buttonMap {
		if m&e.t != 0 {
			out |= e.b
		}
	}
	return out
}

func wheelOf(m tcell.ButtonMask) int {
	switch {
	case m&tcell.WheelUp != 0:
		return 1
	case m&tcell.WheelDown != 0:
		return -1
	}
	return 0
}
