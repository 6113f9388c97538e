package activity

import (
	"fmt"
	"math"
	"time"
)

// Pace returns the pace in minutes per kilometer for the given elapsed time
// and distance in meters. When the distance is zero or either input is
// non-finite, Pace returns NaN rather than a numeric artifact; callers must
// treat NaN as "no pace yet".
func Pace(elapsed time.Duration, distance float64) float64 {
	if distance <= 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return math.NaN()
	}
	minutes := elapsed.Minutes()
	if minutes <= 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return math.NaN()
	}
	return minutes / (distance / 1000)
}

// Speed returns the average speed in m/s for the given elapsed time and
// distance in meters, or 0 when elapsed is non-positive.
func Speed(elapsed time.Duration, distance float64) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return distance / secs
}

// FormatPace renders a pace value as "M:SS /km". The NaN sentinel renders
// as "--:-- /km".
func FormatPace(pace float64) string {
	if math.IsNaN(pace) || math.IsInf(pace, 0) || pace < 0 {
		return "--:-- /km"
	}
	totalSecs := int(math.Round(pace * 60))
	return fmt.Sprintf("%d:%02d /km", totalSecs/60, totalSecs%60)
}
