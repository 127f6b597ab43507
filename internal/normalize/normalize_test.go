package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "In Contrast", "in contrast"},
		{"trim", "  on the whole  ", "on the whole"},
		{"collapse whitespace", "by  and \t large", "by and large"},
		{"trailing period", "in contrast.", "in contrast"},
		{"trailing comma", "for example,", "for example"},
		{"trailing semicolon", "however;", "however"},
		{"trailing colon", "as follows:", "as follows"},
		{"keeps apostrophe", "Don't Mention It", "don't mention it"},
		{"keeps hyphen", "State-of-the-Art", "state-of-the-art"},
		{"keeps internal punctuation", "e.g. this", "e.g. this"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
		{"only punctuation", ".", ""},
		{"case and punctuation", "In Contrast.", "in contrast"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"In Contrast.", "  by and   large , ", "don't", "STATE-OF-THE-ART;",
		"", "for example", "as follows:",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestFirstCharHint(t *testing.T) {
	assert.Equal(t, "I", FirstCharHint("in contrast"))
	assert.Equal(t, "D", FirstCharHint("don't"))
	assert.Equal(t, "", FirstCharHint(""))
}

func TestLengthHint(t *testing.T) {
	// Whitespace does not count toward the hint length.
	assert.Equal(t, 10, LengthHint("in contrast"))
	assert.Equal(t, 5, LengthHint("don't"))
	assert.Equal(t, 0, LengthHint(""))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("In Contrast.", "in contrast"))
	assert.True(t, Equal("by  and large", "By and Large,"))
	assert.False(t, Equal("in contrast", "on contrast"))
}
