package argsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"plain flags", "--raw --verbose", []string{"--raw", "--verbose"}},
		{"double quoted", `--comment "two words"`, []string{"--comment", "two words"}},
		{"single quoted", "--root 'with spaces'", []string{"--root", "with spaces"}},
		{"escaped space", `a\ b`, []string{"a b"}},
		{"empty quoted token", `--name ""`, []string{"--name", ""}},
		{"escaped quote in double", `--v "say \"hi\""`, []string{"--v", `say "hi"`}},
		{"collapsed whitespace", "  --raw \t --i2pgm  ", []string{"--raw", "--i2pgm"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Split(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitErrors(t *testing.T) {
	_, err := Split(`--comment "open`)
	assert.ErrorIs(t, err, ErrUnclosedQuote)

	_, err = Split(`--raw \`)
	assert.ErrorIs(t, err, ErrTrailingEscape)
}
