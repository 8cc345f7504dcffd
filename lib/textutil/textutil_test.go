package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{input: "Finish Net", expected: "finish net"},
		{input: "  finish   net \n", expected: "finish net"},
		{input: "5K", expected: "5k"},
		{input: "HALF", expected: "half"},
	}
	for _, c := range cases {
		require.Equal(t, c.expected, NormalizeLabel(c.input))
	}
}

func TestStripPlaceholder(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{input: "-", expected: ""},
		{input: "'-'", expected: ""},
		{input: "' '", expected: ""},
		{input: "  ", expected: ""},
		{input: "", expected: ""},
		{input: "01:02:03", expected: "01:02:03"},
		{input: " 04:30", expected: "04:30"},
	}
	for _, c := range cases {
		require.Equal(t, c.expected, StripPlaceholder(c.input))
	}
}

func TestIsPlaceholder(t *testing.T) {
	require.True(t, IsPlaceholder("-"))
	require.True(t, IsPlaceholder("'-'"))
	require.True(t, IsPlaceholder(""))
	require.False(t, IsPlaceholder("01:02:03"))
	require.False(t, IsPlaceholder("18-39"))
}
