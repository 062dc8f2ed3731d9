package movie

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name, title, year string
	}{
		{"empty title", "", "1994"},
		{"blank title", "   \t", "1994"},
		{"empty year", "Leon", ""},
		{"blank year", "Leon", "  "},
		{"title too long", strings.Repeat("a", MaxTitleLen+1), "1994"},
		{"year too long", "Leon", "19945"},
		{"year is text, length only", "Leon", "9999999"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.title, tc.year)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestValidate_TrimsAndAccepts(t *testing.T) {
	in, err := Validate("  WALL-E \n", " 2008 ")
	require.NoError(t, err)
	assert.Equal(t, Input{Title: "WALL-E", Year: "2008"}, in)
}

func TestValidate_Boundaries(t *testing.T) {
	_, err := Validate(strings.Repeat("a", MaxTitleLen), "abcd")
	assert.NoError(t, err)

	// 按字符计数：60 个汉字合法
	_, err = Validate(strings.Repeat("龙", MaxTitleLen), "1994")
	assert.NoError(t, err)

	_, err = Validate("  "+strings.Repeat("a", MaxTitleLen)+"  ", "1")
	assert.NoError(t, err, "surrounding whitespace is not counted")
}
