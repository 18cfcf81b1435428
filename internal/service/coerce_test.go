package service

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12", 12, true},
		{" 12.7 ", 12, true},
		{"3kg", 3, true},
		{"+4", 4, true},
		{"-2", -2, true},
		{"1e3", 1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{".5", 0, false},
		{"99999999999999999999999", math.MaxInt, true},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.in), func(t *testing.T) {
			n, ok := ParseIntPrefix(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestParseFloatPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2.50", 2.5, true},
		{"3.5abc", 3.5, true},
		{".5", 0.5, true},
		{"7.", 7, true},
		{"1e3", 1000, true},
		{"2e", 2, true},
		{"2e+x", 2, true},
		{"-1.25", -1.25, true},
		{"0x10", 0, true},
		{"", 0, false},
		{".", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.in), func(t *testing.T) {
			f, ok := ParseFloatPrefix(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestParseFloatPrefix_OutOfRangeIsInf(t *testing.T) {
	f, ok := ParseFloatPrefix("1e999")
	assert.True(t, ok)
	assert.True(t, math.IsInf(f, 1))
}
