package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripNonDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"111.444.777-35", "11144477735"},
		{"01310-100", "01310100"},
		{"abc", ""},
		{" 12 / 03 / 1990 ", "12031990"},
		{"٣12", "12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StripNonDigits(tt.in), "input %q", tt.in)
	}
}

func TestFormatDocument(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11144477735", "111.444.777-35"},
		{"111.444.777-35", "111.444.777-35"},
		{"1114", "111.4"},
		{"111444", "111.444"},
		{"1114447", "111.444.7"},
		{"1114447773", "111.444.777-3"},
		{"1114447773599", "111.444.777-35"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDocument(tt.in), "input %q", tt.in)
	}
}

func TestFormatPostalCode(t *testing.T) {
	assert.Equal(t, "01310-100", FormatPostalCode("01310100"))
	assert.Equal(t, "01310-100", FormatPostalCode("01310-100"))
	assert.Equal(t, "01310-1", FormatPostalCode("013101"))
	assert.Equal(t, "01310", FormatPostalCode("01310"))
	assert.Equal(t, "01310-100", FormatPostalCode("013101009"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "01/01/2000", FormatDate("01012000"))
	assert.Equal(t, "01/01/2000", FormatDate("01/01/2000"))
	assert.Equal(t, "01/0", FormatDate("010"))
	assert.Equal(t, "01/01/2000", FormatDate("0101200012"))
}

func TestFormattersAreIdempotent(t *testing.T) {
	for _, in := range []string{"1", "12345", "111444777", "11144477735", "abc123def456"} {
		for _, f := range []func(string) string{FormatDocument, FormatPostalCode, FormatDate} {
			once := f(in)
			assert.Equal(t, once, f(once), "input %q", in)
		}
	}
}

func TestNew(t *testing.T) {
	id := New()
	assert.Len(t, id, 26)
	assert.NotEqual(t, id, New())
}
