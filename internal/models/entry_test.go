package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoodWantsIntensity(t *testing.T) {
	assert.True(t, MoodWantsIntensity(MoodHurt))
	assert.True(t, MoodWantsIntensity(MoodTired))
	assert.True(t, MoodWantsIntensity(MoodOverthinking))

	assert.False(t, MoodWantsIntensity(MoodHappy))
	assert.False(t, MoodWantsIntensity(MoodHopeful))
	assert.False(t, MoodWantsIntensity(MoodQuiet))
	assert.False(t, MoodWantsIntensity(""))
}
