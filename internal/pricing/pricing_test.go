package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"display string with thousands", "R$ 1.234,56", 1234.56},
		{"display string", "R$ 7,00", 7},
		{"plain numeric string", "12.00", 12},
		{"integer string", "7", 7},
		{"number", 7, 7},
		{"float", 12.5, 12.5},
		{"garbage", "garbage", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"negative clamps", "-3,50", 0},
		{"symbol without space", "R$9,90", 9.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.in), 1e-9)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "R$ 12,00", Format(12))
	assert.Equal(t, "R$ 7,50", Format(7.5))
	assert.Equal(t, "R$ 0,00", Format(0))
	assert.Equal(t, "R$ 1234,56", Format(1234.56))
}

func TestFormatRoundTripsCanonicalValues(t *testing.T) {
	for _, v := range []float64{0, 7, 12.34, 1234.56} {
		assert.InDelta(t, v, Normalize(Format(v)), 1e-9)
	}
}
