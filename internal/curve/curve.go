// Package curve maps a temperature reading to a fan speed percentage.
package curve

import "math"

// Bounds of the preview table, in °C.
const (
	PreviewFrom = 20
	PreviewTo   = 100
)

// Speed returns the fan speed percentage for temp, in [0, maxSpeed].
//
// At or below target the fan is off, at or above threshold it runs at
// maxSpeed, in between the speed follows a cubic ease-in of the position
// of temp inside the (target, threshold) band.
// When threshold <= target the curve degrades to a step at target.
func Speed(temp, target, threshold, maxSpeed int) int {
	switch {
	case temp <= target:
		return 0
	case temp >= threshold:
		return maxSpeed
	}

	ratio := float64(temp-target) / float64(threshold-target)
	eased := ratio * ratio * ratio

	return int(math.Round(eased * float64(maxSpeed)))
}

// Point is a row of the preview table.
type Point struct {
	Temperature int
	Speed       int
}

// Preview evaluates Speed for every integer temperature
// between PreviewFrom and PreviewTo, inclusive.
func Preview(target, threshold, maxSpeed int) []Point {
	points := make([]Point, 0, PreviewTo-PreviewFrom+1)
	for temp := PreviewFrom; temp <= PreviewTo; temp++ {
		points = append(points, Point{
			Temperature: temp,
			Speed:       Speed(temp, target, threshold, maxSpeed),
		})
	}
	return points
}
