package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNDC(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"segmented 5-4-2", "00456-0460-01", "00456046001"},
		{"segmented short segments", "456-460-1", "00456046001"},
		{"plain 11 digits", "00456046001", "00456046001"},
		{"plain 10 digits", "0045604601", "0045604601"},
		{"space delimited", "00456 0460 01", "00456046001"},
		{"dot delimited", "00456.0460.01", "00456046001"},
		{"with whitespace", "  00456-0460-01  ", "00456046001"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeNDC(tt.input))
		})
	}
}

func TestNDCEqual(t *testing.T) {
	tests := []struct {
		name  string
		a     string
		b     string
		equal bool
	}{
		{"segmented vs 11-digit", "00456-0460-01", "00456046001", true},
		{"segmented vs 10-digit", "00456-0460-01", "0045604601", true},
		{"10-digit vs 11-digit", "0045604601", "00456046001", true},
		{"identical segmented", "00456-0460-01", "00456-0460-01", true},
		{"different products", "00456-0460-01", "00456-0461-01", false},
		{"different labelers", "00455-0460-01", "00456-0460-01", false},
		{"leading zero dropped on labeler", "0456-0460-01", "00456-0460-01", true},
		{"completely different", "12345678901", "10987654321", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, NDCEqual(tt.a, tt.b))
			assert.Equal(t, tt.equal, NDCEqual(tt.b, tt.a), "equality must be symmetric")
		})
	}
}

func TestNDCContains(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		query   string
		matches bool
	}{
		{"full match", "00456-0460-01", "00456-0460-01", true},
		{"partial raw", "00456-0460-01", "0460", true},
		{"partial normalized", "00456-0460-01", "45604", true},
		{"prefix", "00456046001", "00456", true},
		{"no match", "00456-0460-01", "99999", false},
		{"empty query", "00456-0460-01", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, NDCContains(tt.value, tt.query))
		})
	}
}

func TestNewNDC(t *testing.T) {
	t.Run("valid segmented code", func(t *testing.T) {
		ndc, err := NewNDC("00456-0460-01")
		require.NoError(t, err)
		assert.Equal(t, "00456-0460-01", ndc.Raw())
		assert.Equal(t, "00456046001", ndc.Normalized())
	})

	t.Run("equality across formats", func(t *testing.T) {
		a, err := NewNDC("00456-0460-01")
		require.NoError(t, err)
		b, err := NewNDC("0045604601")
		require.NoError(t, err)
		assert.True(t, a.Equals(b))
	})

	t.Run("search containment", func(t *testing.T) {
		ndc, err := NewNDC("00456-0460-01")
		require.NoError(t, err)
		assert.True(t, ndc.Contains("0460"))
		assert.False(t, ndc.Contains("77777"))
	})

	t.Run("empty identifier rejected", func(t *testing.T) {
		_, err := NewNDC("   ")
		assert.Error(t, err)
	})

	t.Run("non-numeric identifier rejected", func(t *testing.T) {
		_, err := NewNDC("ABC-DEF-GH")
		assert.Error(t, err)
	})

	t.Run("overlong identifier rejected", func(t *testing.T) {
		_, err := NewNDC("123456789012345")
		assert.Error(t, err)
	})
}
