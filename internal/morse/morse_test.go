package morse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodebookCoversAlphabet(t *testing.T) {
	for _, r := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 " {
		p, ok := Lookup(r)
		require.True(t, ok, "missing %q", r)
		assert.NotEmpty(t, p)
		assert.True(t, strings.HasPrefix(p, "1") || r == ' ', "pattern for %q must start keyed", r)
	}
	_, ok := Lookup('?')
	assert.False(t, ok)
}

func TestCodebookPatterns(t *testing.T) {
	assert.Equal(t, "10111", Pattern('A'))
	assert.Equal(t, "1", Pattern('E'))
	assert.Equal(t, "111", Pattern('T'))
	assert.Equal(t, "1110111011101110111", Pattern('0'))
	assert.Equal(t, WordGap, Pattern(' '))
	assert.Panics(t, func() { Pattern('a') })
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "HELLO  WORLD ", Normalize("hello, world!"))
	assert.Equal(t, "CQ DE K1ABC", Normalize("cq de k1abc"))
	assert.Equal(t, "R SUM ", Normalize("résumé"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "STRASSE", Normalize("straße"))
	assert.Equal(t, "FI", Normalize("\ufb01"))
}

func TestNormalizeIdempotentAndTotal(t *testing.T) {
	inputs := []string{"", "abc", "Ünïcödé 42", "tab\tnew\nline", "ALREADY CLEAN", "!@#$%^&*()", "ß"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
		assert.True(t, IsClean(once), "input %q", in)
	}
}

func TestValidateClean(t *testing.T) {
	require.NoError(t, ValidateClean("SOS 123"))
	err := ValidateClean("SOS?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotClean))
	assert.Contains(t, err.Error(), "byte 3")
	assert.False(t, IsClean("sos"))
}

func TestEncodeSOS(t *testing.T) {
	want := "10101" + CharGap + "11101110111" + CharGap + "10101"
	got := EncodeText("sos")
	assert.Equal(t, want, got)
	assert.Equal(t, got, Encode(Normalize("SOS")))
}

func TestEncodeWordGaps(t *testing.T) {
	assert.Equal(t, "1"+WordGap+"1", Encode("E E"))
	assert.Equal(t, "1"+CharGap+"1"+WordGap, Encode("EE "))
	assert.Equal(t, WordGap+"111", Encode(" T"))
	assert.Equal(t, "", Encode(""))
	assert.NotContains(t, Encode("AB CD EF"), "00000000")
}

func TestDotDash(t *testing.T) {
	assert.Equal(t, "... --- ...", DotDash("SOS"))
	assert.Equal(t, ".- / -...", DotDash("A B"))
}

func TestPool(t *testing.T) {
	assert.Equal(t, "KM", Pool(2))
	assert.Equal(t, "K", Pool(0))
	assert.Equal(t, KochOrder, Pool(100))
	assert.Len(t, KochOrder, 36)
	for _, r := range KochOrder {
		_, ok := Lookup(r)
		assert.True(t, ok, "%q", r)
	}
}
