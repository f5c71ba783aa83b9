package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDollarValue(t *testing.T) {
	tests := []struct {
		name   string
		number string
		suffix string
		want   float64
	}{
		{name: "million word", number: "1.5", suffix: "million", want: 1_500_000},
		{name: "billion short", number: "2", suffix: "B", want: 2_000_000_000},
		{name: "billion bn", number: "3.2", suffix: "bn", want: 3_200_000_000},
		{name: "million mm", number: "45", suffix: "mm", want: 45_000_000},
		{name: "thousand k", number: "750", suffix: "k", want: 750_000},
		{name: "no suffix is literal dollars", number: "2,300,000", suffix: "", want: 2_300_000},
		{name: "comma grouping with suffix", number: "1,200", suffix: "million", want: 1_200_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDollarValue(tt.number, tt.suffix)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDollarValue_Invalid(t *testing.T) {
	_, ok := ParseDollarValue("abc", "million")
	assert.False(t, ok)
}

func TestExtractDollarAmounts(t *testing.T) {
	text := "The parties agreed to settle for $1.5 million, and the Company separately paid a $250,000 civil penalty."

	amounts := ExtractDollarAmounts(text)
	require.Len(t, amounts, 2)

	assert.Equal(t, 1_500_000.0, amounts[0].Value)
	assert.Equal(t, "$1.5M", amounts[0].Display)
	assert.Equal(t, 250_000.0, amounts[1].Value)
	assert.Equal(t, "$250K", amounts[1].Display)
}

func TestExtractDollarAmounts_SuffixNeedsBoundary(t *testing.T) {
	// "Billings" must not be read as a billion suffix.
	amounts := ExtractDollarAmounts("We recorded $2 Billings adjustments.")
	require.Len(t, amounts, 1)
	assert.Equal(t, 2.0, amounts[0].Value)
}

func TestLargestDollarAmount(t *testing.T) {
	amount, ok := LargestDollarAmount("The complaint seeks between $5 million and $10 million in damages plus $200,000 in fees.")
	require.True(t, ok)
	assert.Equal(t, 10_000_000.0, amount.Value)
	assert.Equal(t, "$10M", amount.Display)
}

func TestLargestDollarAmount_NoAmounts(t *testing.T) {
	_, ok := LargestDollarAmount("No monetary relief was specified in the complaint.")
	assert.False(t, ok)
}
