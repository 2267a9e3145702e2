package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetSimpleTextEmptyEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetWithDefault(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		current    string
		want       string
		wantPrompt string
	}{
		{
			name:       "empty keeps current",
			input:      "\n",
			current:    "Ann",
			want:       "Ann",
			wantPrompt: "Name [Ann]\n> ",
		},
		{
			name:       "input replaces current",
			input:      "Bo\n",
			current:    "Ann",
			want:       "Bo",
			wantPrompt: "Name [Ann]\n> ",
		},
		{
			name:       "no current value",
			input:      "\n",
			current:    "",
			want:       "",
			wantPrompt: "Name\n> ",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetWithDefault(rdr(tc.input), "Name", tc.current, &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantPrompt, out.String())
		})
	}
}

func TestGetConfirmation(t *testing.T) {
	tests := map[string]bool{
		"y\n":     true,
		"Y\n":     true,
		"yes\n":   true,
		" YES \n": true,
		"n\n":     false,
		"\n":      false,
		"yep\n":   false,
		"no\n":    false,
	}
	for input, want := range tests {
		var out bytes.Buffer
		got, err := GetConfirmation(rdr(input), "Sure?", &out)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
		assert.Equal(t, "Sure? [y/N]\n> ", out.String())
	}
}
