package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	text, err := GetSimpleText(reader, "Say something", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Contains(t, out.String(), "Say something")
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("no newline"))

	text, err := GetSimpleText(reader, "Say something", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", text)
}

func TestGetOptionalText_FallsBack(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("\n"))

	text, err := GetOptionalText(reader, "City", "Davao", &out)
	require.NoError(t, err)
	assert.Equal(t, "Davao", text)
	assert.Contains(t, out.String(), "[Davao]")
}

func TestGetOptionalText_OverridesFallback(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("Cebu\n"))

	text, err := GetOptionalText(reader, "City", "Davao", &out)
	require.NoError(t, err)
	assert.Equal(t, "Cebu", text)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret!"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword(&out, "Password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret!", pw)
	assert.Contains(t, out.String(), "Password: ")
}
