package wpplanner

import (
	"math"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

const rotationSquareTolerance = 0.5 // |w-d| below this: case is ~square, never rotate

// orientation is a candidate (width, depth) resolution of a case or group.
type orientation struct {
	Width    float64
	Depth    float64
	Rotation int
	ItemsPerRow int
	Fill     float64
}

// resolveOrientation implements the Phase 0 rotation oracle: prefer the
// orientation with strictly larger per-row fill, tie-breaking on a larger
// items-per-row count. allowRotation=false or a near-square case short
// circuits to the as-given orientation.
func resolveOrientation(w, d, truckWidth float64, allowRotation bool) orientation {
	asIs := buildOrientation(w, d, wpcore.RotationNone, truckWidth)
	if !allowRotation || math.Abs(w-d) < rotationSquareTolerance {
		return asIs
	}
	rotated := buildOrientation(d, w, wpcore.Rotation90Deg, truckWidth)

	if rotated.Fill > asIs.Fill {
		return rotated
	}
	if rotated.Fill == asIs.Fill && rotated.ItemsPerRow > asIs.ItemsPerRow {
		return rotated
	}
	return asIs
}

func buildOrientation(w, d float64, rotation int, truckWidth float64) orientation {
	ipr := 0
	if w > 0 {
		ipr = int(math.Floor(truckWidth / w))
	}
	return orientation{
		Width:       w,
		Depth:       d,
		Rotation:    rotation,
		ItemsPerRow: ipr,
		Fill:        float64(ipr) * w,
	}
}

// depthWeight is a remaining orphan pool's depth and the number of cases
// still sitting in it, used to weight the Phase 3B depth-compatibility
// objective by case count rather than by pool count.
type depthWeight struct {
	depth float64
	count int
}

// resolveOrientationDepthCompat is the Phase 3B variant of the oracle: it
// maximizes the count of OTHER remaining orphan cases whose depth lies
// within WP_DEPTH_RELAXED of the candidate orientation's depth (weighted
// 100x), plus the per-row fit count from the packing-fit objective.
// otherDepths describes every other remaining orphan pool (this pool
// excluded).
func resolveOrientationDepthCompat(w, d, truckWidth float64, allowRotation bool, otherDepths []depthWeight) orientation {
	asIs := buildOrientation(w, d, wpcore.RotationNone, truckWidth)
	if !allowRotation || math.Abs(w-d) < rotationSquareTolerance {
		return asIs
	}
	rotated := buildOrientation(d, w, wpcore.Rotation90Deg, truckWidth)

	asIsScore := depthCompatScore(asIs, otherDepths)
	rotatedScore := depthCompatScore(rotated, otherDepths)

	if rotatedScore > asIsScore {
		return rotated
	}
	return asIs
}

func depthCompatScore(o orientation, otherDepths []depthWeight) float64 {
	count := 0
	for _, od := range otherDepths {
		if math.Abs(od.depth-o.Depth) <= WPDepthRelaxed {
			count += od.count
		}
	}
	return 100.0*float64(count) + float64(o.ItemsPerRow)
}
