package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("NATIVEINPUT_CONFIG", "")
	assert.Equal(t, "a.yaml", findUserConfig([]string{"replay", "--config=a.yaml", "x.json"}))
	assert.Equal(t, "b.toml", findUserConfig([]string{"--config", "b.toml", "watch"}))
	assert.Equal(t, "", findUserConfig([]string{"--config"}))

	t.Setenv("NATIVEINPUT_CONFIG", "env.json")
	assert.Equal(t, "env.json", findUserConfig([]string{"devices"}))
	assert.Equal(t, "flag.json", findUserConfig([]string{"--config=flag.json"}))
}
