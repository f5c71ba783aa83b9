package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-intel-scryper/internal/intel/dto"
)

func TestPadCIK(t *testing.T) {
	assert.Equal(t, "0000320193", PadCIK(320193))
	assert.Equal(t, "0000001750", PadCIK(1750))
	assert.Equal(t, "1234567890", PadCIK(1234567890))
}

func TestMatchDirectory_ExactTickerBeatsSubstring(t *testing.T) {
	directory := []dto.TickerDirectoryEntry{
		{CIK: 100, Ticker: "ACMW", Title: "Acme Widgets Inc"},
		{CIK: 200, Ticker: "ACME", Title: "Acme Technology Inc"},
	}

	identity := matchDirectory(directory, "acme")
	require.NotNil(t, identity)
	assert.Equal(t, "ACME", identity.Ticker)
	assert.Equal(t, "0000000200", identity.CIK)
}

func TestMatchDirectory_TitleSubstringCaseInsensitive(t *testing.T) {
	directory := []dto.TickerDirectoryEntry{
		{CIK: 100, Ticker: "GLBX", Title: "Globex Corporation"},
	}

	identity := matchDirectory(directory, "globex corp")
	require.NotNil(t, identity)
	assert.Equal(t, "Globex Corporation", identity.Name)
}

func TestMatchDirectory_AmbiguousNameTakesLowestCIK(t *testing.T) {
	// getTickerDirectory sorts entries by CIK, so the first substring hit is
	// also the lowest-CIK filer regardless of map iteration order upstream.
	directory := []dto.TickerDirectoryEntry{
		{CIK: 50, Ticker: "INIT", Title: "Initech Global Inc"},
		{CIK: 900, Ticker: "INGS", Title: "Initech Global Services Inc"},
	}

	identity := matchDirectory(directory, "initech")
	require.NotNil(t, identity)
	assert.Equal(t, "0000000050", identity.CIK)
}

func TestMatchDirectory_NoMatch(t *testing.T) {
	directory := []dto.TickerDirectoryEntry{
		{CIK: 100, Ticker: "GLBX", Title: "Globex Corporation"},
	}

	assert.Nil(t, matchDirectory(directory, "hooli"))
	assert.Nil(t, matchDirectory(directory, "   "))
	assert.Nil(t, matchDirectory(nil, "globex"))
}
