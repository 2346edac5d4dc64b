package caldate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatStyles(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{StyleShort, "Oct 5"},
		{StyleMedium, "Oct 5, 2025"},
		{StyleLong, "Sunday, October 5, 2025"},
		{Style("fancy"), "Oct 5, 2025"},
		{Style(""), "Oct 5, 2025"},
	}
	for _, tt := range tests {
		got, err := Format("2025-10-05", tt.style)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "style %q", tt.style)
	}
}

func TestFormatRejectsMalformed(t *testing.T) {
	_, err := Format("2025-02-30", StyleShort)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestMonthNames(t *testing.T) {
	assert.Equal(t, "October", MonthName(10))
	assert.Equal(t, "Oct", ShortMonthName(10))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", ShortMonthName(13))
}
