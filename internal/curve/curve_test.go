package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpeed(t *testing.T) {
	tests := []struct {
		name                         string
		temp, target, threshold, max int
		want                         int
	}{
		{name: "below target", temp: 20, target: 35, threshold: 70, max: 100, want: 0},
		{name: "at target", temp: 35, target: 35, threshold: 70, max: 100, want: 0},
		{name: "at threshold", temp: 70, target: 35, threshold: 70, max: 100, want: 100},
		{name: "above threshold", temp: 95, target: 35, threshold: 70, max: 100, want: 100},
		{name: "mid band", temp: 52, target: 35, threshold: 70, max: 100, want: 11},
		{name: "capped max", temp: 70, target: 35, threshold: 70, max: 60, want: 60},
		{name: "capped mid band", temp: 63, target: 35, threshold: 70, max: 60, want: 31},
		{name: "zero max", temp: 60, target: 35, threshold: 70, max: 0, want: 0},
		{name: "step at equal bounds", temp: 51, target: 50, threshold: 50, max: 80, want: 80},
		{name: "step at equal bounds, at target", temp: 50, target: 50, threshold: 50, max: 80, want: 0},
		{name: "inverted bounds", temp: 55, target: 60, threshold: 50, max: 80, want: 0},
		{name: "inverted bounds, above target", temp: 61, target: 60, threshold: 50, max: 80, want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Speed(tt.temp, tt.target, tt.threshold, tt.max))
		})
	}
}

func TestSpeedProperties(t *testing.T) {
	for target := 20; target <= 60; target += 5 {
		for threshold := 40; threshold <= 100; threshold += 7 {
			for _, max := range []int{0, 1, 37, 50, 100} {
				prev := 0
				for temp := 0; temp <= 120; temp++ {
					got := Speed(temp, target, threshold, max)
					require.GreaterOrEqual(t, got, 0)
					require.LessOrEqual(t, got, max)
					require.GreaterOrEqual(t, got, prev, "curve must not decrease (temp %d)", temp)
					require.Equal(t, got, Speed(temp, target, threshold, max))

					if temp <= target {
						require.Zero(t, got)
					} else if temp >= threshold {
						require.Equal(t, max, got)
					}
					prev = got
				}
			}
		}
	}
}

func TestPreview(t *testing.T) {
	points := Preview(35, 70, 100)

	require.Len(t, points, PreviewTo-PreviewFrom+1)
	require.Equal(t, Point{Temperature: 20, Speed: 0}, points[0])
	require.Equal(t, Point{Temperature: 52, Speed: 11}, points[52-PreviewFrom])
	require.Equal(t, Point{Temperature: 100, Speed: 100}, points[len(points)-1])
}
