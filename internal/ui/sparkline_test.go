package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
		want  string
	}{
		{"all zeros", []float64{0, 0, 0}, 3, "▁▁▁"},
		{"empty pads", nil, 4, "▁▁▁▁"},
		{"single sample is peak", []float64{100}, 4, "▁▁▁█"},
		{"all equal", []float64{5, 5, 5}, 3, "███"},
		{"ramp", []float64{1, 2, 3, 4, 5, 6, 7, 8}, 8, "▁▂▃▄▅▆▇█"},
		{"keeps newest samples", []float64{80, 10, 20, 40}, 3, "▂▄█"},
		{"zero width", []float64{1, 2}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sparkline(tt.data, tt.width))
		})
	}
}
