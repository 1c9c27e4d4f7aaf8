package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/nativeinput/platform"
)

func TestEventLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewEvent(&buf).(*eventLogger)
	l.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	l.Log(platform.Event{Kind: platform.EventWheel, Wheel: -2})
	l.Log(platform.Event{})
	l.Log(platform.Event{Kind: platform.EventChar, Key: 0x41, Char: 'a'})

	assert.Equal(t,
		"2024/05/06 07:08:09 IN wheel ticks=-2\n"+
			"2024/05/06 07:08:09 IN char key=0x41 char='a'\n",
		buf.String())
}

func TestEventLoggerNilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		NewEvent(nil).Log(platform.Event{Kind: platform.EventKeyDown, Key: 1})
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"trace": "DEBUG-4",
		"debug": "DEBUG",
		"":      "INFO",
		"warn":  "WARN",
		"error": "ERROR",
		"bogus": "INFO",
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in).String(), in)
	}
}
