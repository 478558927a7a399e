package wpplanner

import (
	"math"
	"sort"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

// scoredWall pairs a wall with its Phase 4 score and the bits of staging
// metadata that score depended on, so the stager doesn't need to recompute
// them.
type scoredWall struct {
	wall     *wpcore.Wall
	score    float64
	dept     string
	deptPri  int
}

// scoreWall computes the literal Phase 4 scoring function from spec §4.9.
// Its coefficients (100, 4, 3000, 50, 2000, 5000) are part of the contract
// and must not be adjusted.
func scoreWall(wall *wpcore.Wall, truckWidth, truckHeight float64, deptPriority map[string]int) scoredWall {
	fillRatio := wallFillRatio(wall, truckWidth)
	effectiveH := wall.MaxHeight * fillRatio
	heightInv := math.Round(100 - effectiveH)

	dept := majorityWallDept(wall)
	deptPri, ok := deptPriority[dept]
	if !ok {
		deptPri = len(deptPriority) + 1
	}

	relGroup := int(wall.Reliability)
	if relGroup > 4 {
		relGroup = 4
	}

	score := heightInv*100 + float64(deptPri)*4 + float64(relGroup)

	minH, maxH := math.Inf(1), math.Inf(-1)
	for _, c := range wall.Columns {
		if c.StackedH < minH {
			minH = c.StackedH
		}
		if c.StackedH > maxH {
			maxH = c.StackedH
		}
	}
	heightRange := 0.0
	if len(wall.Columns) > 0 {
		heightRange = maxH - minH
	}
	if heightRange > 10 {
		if truckHeight > 0 {
			score += math.Round((heightRange / truckHeight) * 3000)
		}
	}

	nCols := len(wall.Columns)
	capped := nCols
	if capped > 4 {
		capped = 4
	}
	score -= float64(capped) * 50

	if nCols <= 2 && fillRatio < 0.90 {
		score += 2000
	}
	if fillRatio < 0.50 {
		score += 5000
	}

	return scoredWall{wall: wall, score: score, dept: dept, deptPri: deptPri}
}

// orderWalls is Phase 4: score every non-floor wall and sort so that lower
// scores (walls best suited to be near the cab) come first. Ties break on
// department priority, then on descending fill ratio.
func orderWalls(walls []*wpcore.Wall, truckWidth, truckHeight float64, deptPriority map[string]int) []scoredWall {
	scored := make([]scoredWall, 0, len(walls))
	for _, w := range walls {
		scored = append(scored, scoreWall(w, truckWidth, truckHeight, deptPriority))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score < scored[j].score
		}
		if scored[i].deptPri != scored[j].deptPri {
			return scored[i].deptPri < scored[j].deptPri
		}
		return wallFillRatio(scored[i].wall, truckWidth) > wallFillRatio(scored[j].wall, truckWidth)
	})
	return scored
}

// stage is a run of consecutive ordered walls sharing reliability,
// majority department, and a height band within WP_STAGE_HEIGHT_TOL.
type stage struct {
	label string
	walls []*wpcore.Wall
}

// buildStages groups an already-ordered wall list into stages.
func buildStages(ordered []scoredWall) []stage {
	var stages []stage
	for _, sw := range ordered {
		if len(stages) > 0 {
			last := &stages[len(stages)-1]
			lastWall := last.walls[len(last.walls)-1]
			if sameStage(lastWall, sw.wall, sw.dept) {
				last.walls = append(last.walls, sw.wall)
				continue
			}
		}
		stages = append(stages, stage{
			label: stageLabel(sw.dept, sw.wall.Reliability),
			walls: []*wpcore.Wall{sw.wall},
		})
	}
	return stages
}

func sameStage(a, b *wpcore.Wall, bDept string) bool {
	if a.Reliability != b.Reliability {
		return false
	}
	if majorityWallDept(a) != bDept {
		return false
	}
	return math.Abs(a.MaxHeight-b.MaxHeight) <= WPStageHeightTol
}

func stageLabel(dept string, rel wpcore.Reliability) string {
	return dept + " " + rel.String()
}
