package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	forms := []string{"10-K", "10-K/A", "20-F"}

	assert.True(t, ContainsString(forms, "10-K"))
	assert.True(t, ContainsString(forms, "10-k/a"), "match is case-insensitive")
	assert.False(t, ContainsString(forms, "10-Q"))
	assert.False(t, ContainsString(nil, "10-K"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 10))
	assert.Equal(t, "abc...", TruncateString("abcdef", 3))
	assert.Equal(t, "", TruncateString("abc", 0))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \t b\n\nc  "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}

func TestCleanToValidUTF8(t *testing.T) {
	assert.Equal(t, "hello", CleanToValidUTF8("hello"))
	assert.Equal(t, "ab", CleanToValidUTF8("a\xffb"))
}
