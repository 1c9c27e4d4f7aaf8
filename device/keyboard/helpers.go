package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

func (k Key) String() string {
	if name, ok := KeyName[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint8(k))
}

// ParseKey resolves a key name as listed in KeyName (case-insensitive) or a
// numeric code ("65", "0x41").
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	for k, name := range KeyName {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return KeyNone, fmt.Errorf("unknown key %q", s)
	}
	return Key(n), nil
}

// KeyForChar returns the key that produces c on a US layout, or KeyNone.
func KeyForChar(c rune) Key {
	switch {
	case c >= 'a' && c <= 'z':
		return KeyA + Key(c-'a')
	case c >= 'A' && c <= 'Z':
		return KeyA + Key(c-'A')
	case c >= '0' && c <= '9':
		return Key0 + Key(c-'0')
	}
	switch c {
	case ' ':
		return KeySpace
	case '\r', '\n':
		return KeyEnter
	case '\t':
		return KeyTab
	case '\b', 0x7f:
		return KeyBackspace
	case 0x1b:
		return KeyEscape
	}
	return KeyNone
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	v, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
