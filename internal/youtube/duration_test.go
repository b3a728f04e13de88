package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT1H2M3S", 3723},
		{"PT15M", 900},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"P1DT1S", 86401},
		{"P0D", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseISODuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseISODuration_Invalid(t *testing.T) {
	for _, input := range []string{"", "P", "PT", "1H2M", "PT1.5S", "garbage"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseISODuration(input)
			assert.Error(t, err)
		})
	}
}
