package iocli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdioFrom(strings.NewReader(""), &out)

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s", 1, "abc")

	assert.Equal(t, "hello world\ntest 1 abc", out.String())
}

func TestReadInput(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdioFrom(strings.NewReader("  user input \nsecond\nlast"), &out)

	first, err := stdio.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", first)

	// общий буфер между вызовами, вторая строка не теряется
	second, err := stdio.ReadInput("Again: ")
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	last, err := stdio.ReadInput("Last: ")
	require.NoError(t, err)
	assert.Equal(t, "last", last)

	_, err = stdio.ReadInput("EOF: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Prompt: Again: Last: EOF: ", out.String())
}

func TestReadInput_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("from pipe\n"))
		_ = w.Close()
	}()
	defer r.Close()

	stdio := NewStdioFrom(r, io.Discard)
	result, err := stdio.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "from pipe", result)
}

func TestReadPassword_NotTerminal(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdioFrom(strings.NewReader(" Secret$Pass1 \r\n"), &out)

	pw, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, " Secret$Pass1 ", pw, "пробелы в пароле сохраняются")
	assert.Equal(t, "Password: ", out.String())

	_, err = stdio.ReadPassword("Password: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "yes\n", want: true},
		{input: " YES \n", want: true},
		{input: "n\n", want: false},
		{input: "no\n", want: false},
		{input: "\n", want: false},
		{input: "yep\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			stdio := NewStdioFrom(strings.NewReader(tt.input), io.Discard)
			got, err := stdio.Confirm("Sure? (yes/no): ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	stdio := NewStdioFrom(strings.NewReader(""), io.Discard)
	got, err := stdio.Confirm("Sure? ")
	assert.ErrorIs(t, err, io.EOF)
	assert.False(t, got)
}
