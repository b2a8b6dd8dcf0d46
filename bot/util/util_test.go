package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdventureChannel(t *testing.T) {
	t.Chdir(t.TempDir())

	id, err := GetChannelID()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, SetAdventureChannel("1234"))
	require.NoError(t, SetAdventureChannel("5678"))

	id, err = GetChannelID()
	require.NoError(t, err)
	assert.Equal(t, "5678", id)
}

func TestMention(t *testing.T) {
	assert.Equal(t, "<@42>", Mention("42"))

	id, err := ParseDiscordID(" 80351110224678912 ")
	require.NoError(t, err)
	assert.Equal(t, uint(80351110224678912), id)

	_, err = ParseDiscordID("nope")
	assert.Error(t, err)
}

func TestHPBar(t *testing.T) {
	assert.Equal(t, "██████████", HPBar(100, 10))
	assert.Equal(t, "█████░░░░░", HPBar(50, 10))
	assert.Equal(t, "░░░░░░░░░░", HPBar(-20, 10))
	assert.Equal(t, "██████████", HPBar(250, 10))
	assert.Empty(t, HPBar(50, 0))
}
