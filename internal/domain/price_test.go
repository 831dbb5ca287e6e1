package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		want    float64
		wantErr bool
	}{
		{name: "negative rejected", price: -0.01, wantErr: true},
		{name: "zero allowed", price: 0, want: 0},
		{name: "whole number untouched", price: 10, want: 10},
		{name: "two decimals untouched", price: 6.50, want: 6.5},
		{name: "half rounds up", price: 6.555, want: 6.56},
		{name: "half rounds up at boundary", price: 2.005, want: 2.01},
		{name: "below half rounds down", price: 6.554, want: 6.55},
		{name: "long fraction", price: 3.14159, want: 3.14},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := NormalizePrice(testCase.price)
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"main", "side", "drink", "dessert"} {
		category, err := ParseCategory(valid)
		assert.NoError(t, err)
		assert.Equal(t, Category(valid), category)
	}

	_, err := ParseCategory("breakfast")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
