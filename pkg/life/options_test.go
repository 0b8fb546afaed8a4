package life

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsIsKnownOnOff(t *testing.T) {
	assert.True(t, Options(DeadMask).IsKnownOn())
	assert.False(t, Options(DeadMask).IsKnownOff())
	assert.True(t, Options(LiveMask).IsKnownOff())
	assert.True(t, Options(AllMask).IsImpossible())
}

func TestOptionsIsUnknown(t *testing.T) {
	assert.True(t, Options(0).IsUnknown())
	assert.False(t, Options(DeadMask).IsUnknown())
}

func TestOptionsIsVulnerable(t *testing.T) {
	remaining := AllMask &^ Live3 &^ Dead2
	assert.True(t, Options(remaining).IsVulnerable())
	assert.False(t, Options(0).IsVulnerable())
}
