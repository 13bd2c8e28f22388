package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authify/authify-cli/internal/otp"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	got, err := GetPassword(&out, "Enter password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Enter password")
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }

	var out bytes.Buffer
	_, err := GetPassword(&out, "Enter password")
	require.Error(t, err)
}

func TestGetCode_Paste(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("12-34-56\n"))
	input := otp.NewInput()
	var out bytes.Buffer

	require.NoError(t, GetCode(in, input, &out))
	assert.Equal(t, "123456", input.Code())
}

func TestGetCode_DigitByDigitWithBackspace(t *testing.T) {
	// "<" on the empty third cell moves focus back onto the second one,
	// which the next keystroke overwrites.
	in := bufio.NewReader(strings.NewReader("1\n9\n<\n2\n3\n4\n5\n6\n"))
	input := otp.NewInput()
	var out bytes.Buffer

	require.NoError(t, GetCode(in, input, &out))
	assert.Equal(t, "123456", input.Code())
}

func TestGetCode_EOFBeforeComplete(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("1\n2\n"))
	input := otp.NewInput()
	var out bytes.Buffer

	require.Error(t, GetCode(in, input, &out))
}
