package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/nativeinput/device/keyboard"
)

func TestEdgeDetection(t *testing.T) {
	k := keyboard.New(nil)

	k.OnKeyDown(keyboard.KeyA)
	assert.True(t, k.IsDown(keyboard.KeyA))
	assert.True(t, k.Pressed(keyboard.KeyA))
	assert.True(t, k.WasUp(keyboard.KeyA))
	assert.False(t, k.Released(keyboard.KeyA))

	k.PostFrame()
	assert.False(t, k.Pressed(keyboard.KeyA), "held key is not pressed again after the sync")
	assert.True(t, k.WasDown(keyboard.KeyA))

	k.OnKeyUp(keyboard.KeyA)
	assert.True(t, k.IsUp(keyboard.KeyA))
	assert.False(t, k.Pressed(keyboard.KeyA))
	assert.True(t, k.Released(keyboard.KeyA))

	k.PostFrame()
	assert.False(t, k.Released(keyboard.KeyA), "release is reported for exactly one frame")
	assert.True(t, k.WasUp(keyboard.KeyA))
}

func TestTapWithinOneFrame(t *testing.T) {
	k := keyboard.New(nil)
	k.OnKeyDown(keyboard.KeySpace)
	k.OnKeyUp(keyboard.KeySpace)

	assert.False(t, k.Pressed(keyboard.KeySpace))
	assert.False(t, k.Released(keyboard.KeySpace))
}

func TestDownKeys(t *testing.T) {
	k := keyboard.New(nil)
	k.OnKeyDown(keyboard.KeyW)
	k.OnKeyDown(keyboard.KeyA)
	k.OnKeyDown(keyboard.KeyLeftShift)

	assert.Equal(t, []keyboard.Key{keyboard.KeyA, keyboard.KeyW, keyboard.KeyLeftShift}, k.DownKeys())
}

func TestCharacterQueueOrder(t *testing.T) {
	k := keyboard.New(nil)
	assert.Equal(t, keyboard.None, k.ReadKey())

	for _, c := range "abc" {
		k.OnCharacter(keyboard.KeyForChar(c), c)
	}
	assert.Equal(t, 3, k.Buffered())
	assert.Equal(t, keyboard.KeyAndChar{Key: keyboard.KeyA, Char: 'a'}, k.ReadKey())
	assert.Equal(t, keyboard.KeyAndChar{Key: keyboard.KeyB, Char: 'b'}, k.ReadKey())
	assert.Equal(t, keyboard.KeyAndChar{Key: keyboard.KeyC, Char: 'c'}, k.ReadKey())
	assert.Equal(t, keyboard.None, k.ReadKey())
}

func TestCharacterQueueDropsNewestWhenFull(t *testing.T) {
	k := keyboard.New(nil)
	for i := 0; i < 150; i++ {
		k.OnCharacter(keyboard.Key(i), rune('0'+i))
	}
	require.Equal(t, keyboard.QueueCapacity, k.Buffered())

	for i := 0; i < keyboard.QueueCapacity; i++ {
		got := k.ReadKey()
		require.Equal(t, keyboard.KeyAndChar{Key: keyboard.Key(i), Char: rune('0' + i)}, got, "event %d", i)
	}
	assert.Equal(t, keyboard.None, k.ReadKey())
	assert.Equal(t, 0, k.Buffered())
}

func TestCharacterQueueWrapsAround(t *testing.T) {
	k := keyboard.New(nil)
	for round := 0; round < 3; round++ {
		for i := 0; i < 70; i++ {
			k.OnCharacter(keyboard.KeyA, rune(i))
		}
		for i := 0; i < 70; i++ {
			require.Equal(t, rune(i), k.ReadKey().Char, "round %d event %d", round, i)
		}
	}
}

func TestListener(t *testing.T) {
	k := keyboard.New(nil)
	var got []keyboard.Event
	k.SetListener(func(ev keyboard.Event) {
		got = append(got, ev)
		// Listeners see the already updated state.
		if ev.Kind == keyboard.KeyDownEvent {
			assert.True(t, k.IsDown(ev.Key))
		}
	})

	k.OnKeyDown(keyboard.KeyH)
	k.OnCharacter(keyboard.KeyH, 'h')
	k.OnKeyUp(keyboard.KeyH)

	assert.Equal(t, []keyboard.Event{
		{Kind: keyboard.KeyDownEvent, Key: keyboard.KeyH},
		{Kind: keyboard.CharEvent, Key: keyboard.KeyH, Char: 'h'},
		{Kind: keyboard.KeyUpEvent, Key: keyboard.KeyH},
	}, got)

	k.SetListener(nil)
	k.OnKeyDown(keyboard.KeyH)
	assert.Len(t, got, 3)
}

func TestReset(t *testing.T) {
	k := keyboard.New(nil)
	k.OnKeyDown(keyboard.KeyQ)
	k.PostFrame()
	k.OnCharacter(keyboard.KeyQ, 'q')

	k.Reset()
	assert.False(t, k.IsDown(keyboard.KeyQ))
	assert.False(t, k.WasDown(keyboard.KeyQ))
	assert.Equal(t, keyboard.None, k.ReadKey())
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   string
		want keyboard.Key
	}{
		{"A", keyboard.KeyA},
		{"space", keyboard.KeySpace},
		{"LeftShift", keyboard.KeyLeftShift},
		{"0x41", keyboard.KeyA},
		{"13", keyboard.KeyEnter},
		{"7", keyboard.Key7},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := keyboard.ParseKey(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := keyboard.ParseKey("nope")
	assert.Error(t, err)
	_, err = keyboard.ParseKey("300")
	assert.Error(t, err)
}

func TestKeyStrings(t *testing.T) {
	assert.Equal(t, "A", keyboard.KeyA.String())
	assert.Equal(t, "0xFF", keyboard.Key(0xFF).String())
	assert.Equal(t, keyboard.KeyEnter, keyboard.KeyForChar('\n'))
	assert.Equal(t, keyboard.KeyNone, keyboard.KeyForChar('é'))
	assert.Equal(t, "Keyboard", keyboard.New(nil).DeviceName())
}
