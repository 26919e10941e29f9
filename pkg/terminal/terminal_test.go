package terminal

import (
	"os"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestEnvInt(t *testing.T) {
	tests := []struct {
		val  string
		want int
	}{
		{"", 80},
		{"120", 120},
		{"abc", 80},
		{"-5", 80},
		{"0", 80},
	}
	for _, tt := range tests {
		t.Setenv("WEATHERDAY_TEST_COLS", tt.val)
		assert.Equal(t, tt.want, envInt("WEATHERDAY_TEST_COLS", 80), "value %q", tt.val)
	}
}

func TestWidthFallsBackToColumns(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	t.Setenv("COLUMNS", "132")
	assert.Equal(t, 132, Width(f.Fd()))

	t.Setenv("COLUMNS", "")
	assert.Equal(t, DefaultWidth, Width(f.Fd()))
}

func TestNonTerminalIsPlain(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	assert.False(t, Interactive(f.Fd()))
	assert.Equal(t, termenv.Ascii, ColorProfile(f.Fd()))
}

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, ColorProfile(os.Stdout.Fd()))
}
