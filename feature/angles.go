package feature

import "math"

// InclinationRad returns the angle in radians between the given normal and
// the vertical axis: arccos(nz).
func InclinationRad(normal [3]float64) float64 {
	return math.Acos(normal[2])
}

// InclinationDeg returns the inclination in degrees.
func InclinationDeg(normal [3]float64) float64 {
	return InclinationRad(normal) * 180 / math.Pi
}

// OrientationRad returns the compass orientation of the normal's horizontal
// projection, atan2(nx, ny), mapped from (-pi, pi] into [0, 2*pi).
func OrientationRad(normal [3]float64) float64 {
	angle := math.Atan2(normal[0], normal[1])
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// OrientationDeg returns the orientation in degrees, in [0, 360).
func OrientationDeg(normal [3]float64) float64 {
	return OrientationRad(normal) * 180 / math.Pi
}
