package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"매콤한 오징어 볶음", "매콤한오징어볶음"},
		{"오징어볶음", "오징어볶음"},
		{" 김치\t찌개\n", "김치찌개"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeCategory(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeCategory(got), "normalization must be idempotent")
		})
	}
}

func TestNormalizeIngredientName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"오징어(손질된 것)", "오징어"},
		{"두부 (국물용)", "두부"},
		{"대파 흰 부분", "대파흰부분"},
		{"고추장", "고추장"},
		{"(약간)", ""},
		{"a)b(c", "a)b(c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeIngredientName(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeIngredientName(got), "normalization must be idempotent")
		})
	}
}
