package rules

import (
	"math"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
)

// AggregateVehicleHitPoints sums the four directional pools
func AggregateVehicleHitPoints(hp bfrpg.VehicleHitPoints) (value, maximum float64) {
	for _, side := range hp.Sides() {
		value += side.Value.Float()
		maximum += side.Max.Float()
	}
	return value, maximum
}

// SidesAtZero counts sides reduced to zero that have a nonzero maximum. A
// malformed value reads as 0 here, as it does in the aggregated total.
func SidesAtZero(hp bfrpg.VehicleHitPoints) int {
	count := 0
	for _, side := range hp.Sides() {
		if side.Value.Float() == 0 && side.Max.Float() != 0 {
			count++
		}
	}
	return count
}

// VehicleMove returns the current movement rate. One disabled side halves
// movement and two or more stop the vehicle.
func VehicleMove(hp bfrpg.VehicleHitPoints, move bfrpg.Number) float64 {
	switch SidesAtZero(hp) {
	case 0:
		return move.Float()
	case 1:
		return math.Floor(move.Float() / 2)
	default:
		return 0
	}
}
