package wpplanner

import (
	"math"

	"github.com/flightcase/wallplanner/internal/wpcore"
	"github.com/flightcase/wallplanner/internal/wperrors"
)

const boundsTolerance = 0.5
const overlapTolerance = 0.5

// validate runs the post-placement invariants from spec §4.11. It never
// alters placements; every finding is reported through v. It does no
// logging itself.
func validate(placements []wpcore.Placement, sections []wpcore.WallSection, env wpcore.TruckEnvelope, v *wperrors.Violations) {
	validateBounds(placements, env, v)
	validateOverlap(placements, v)
	validateFlatFace(sections, v)
}

func validateBounds(placements []wpcore.Placement, env wpcore.TruckEnvelope, v *wperrors.Violations) {
	for _, p := range placements {
		if p.X < -boundsTolerance || p.X+p.Width > env.Width+boundsTolerance {
			v.Add(boundsErr(p, "x out of bounds"))
		}
		if p.Y < -boundsTolerance {
			v.Add(boundsErr(p, "y out of bounds"))
		}
		if p.Z < -boundsTolerance || p.Z+p.Height > env.Height+boundsTolerance {
			v.Add(boundsErr(p, "z out of bounds"))
		}
	}
}

func boundsErr(p wpcore.Placement, msg string) error {
	return wperrors.Diagnostic{Kind: wperrors.Violation, Phase: "Validate", Message: msg, CaseID: p.CaseID, WallID: p.WallID}
}

func validateOverlap(placements []wpcore.Placement, v *wperrors.Violations) {
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i], placements[j]
			if intervalsOverlap(a.X, a.X+a.Width, b.X, b.X+b.Width) &&
				intervalsOverlap(a.Y, a.Y+a.Depth, b.Y, b.Y+b.Depth) &&
				intervalsOverlap(a.Z, a.Z+a.Height, b.Z, b.Z+b.Height) {
				v.Add(wperrors.Diagnostic{
					Kind: wperrors.Violation, Phase: "Validate",
					Message: "overlap between " + a.CaseID + " and " + b.CaseID,
					CaseID:  a.CaseID, WallID: a.WallID,
				})
			}
		}
	}
}

func intervalsOverlap(aStart, aEnd, bStart, bEnd float64) bool {
	overlap := math.Min(aEnd, bEnd) - math.Max(aStart, bStart)
	return overlap > overlapTolerance
}

func validateFlatFace(sections []wpcore.WallSection, v *wperrors.Violations) {
	for _, s := range sections {
		if len(s.Placements) == 0 {
			continue
		}
		minD, maxD := math.Inf(1), math.Inf(-1)
		for _, p := range s.Placements {
			if p.Depth < minD {
				minD = p.Depth
			}
			if p.Depth > maxD {
				maxD = p.Depth
			}
		}
		r := maxD - minD
		if r > WPDepthRelaxed {
			v.Add(wperrors.Diagnostic{
				Kind: wperrors.Violation, Phase: "Validate",
				Message: "CRITICAL flat-face depth range exceeds 8in",
				WallID:  s.ID,
			})
		}
		// ranges in (2, 8] are "acceptable" and <=2 are ideal; neither is
		// reported as a violation, only CRITICAL is.
	}
}
