// Package wpplanner implements the WallPlanner solver: the deterministic,
// phase-structured placer that turns an unordered case inventory plus a
// truck envelope into an ordered sequence of wall sections with exact
// placements. See spec §2 for the phase pipeline this package follows.
package wpplanner

import (
	"context"
	"fmt"

	"github.com/flightcase/wallplanner/internal/wpcore"
	"github.com/flightcase/wallplanner/internal/wperrors"
	"github.com/flightcase/wallplanner/internal/wplog"
)

// Result bundles a solve's full output: the placements, the wall sections
// they were grouped into, and every diagnostic raised along the way.
// Diagnostics never gate the placements — they are always returned
// together.
type Result struct {
	Placements   []wpcore.Placement
	WallSections []wpcore.WallSection
	Diagnostics  []wperrors.Diagnostic
}

// Solve runs the full eight-phase pipeline. It never returns an error for
// packing infeasibility (excess cases simply overflow the emitted length);
// the only error it returns is wperrors.Internal, for an algorithmic
// invariant breach that the solver cannot itself recover from.
func Solve(cases []wpcore.Case, env wpcore.TruckEnvelope, deptPriority map[string]int, kbPatterns []wpcore.KBPattern, lg *wplog.Logger) (Result, error) {
	ctx := context.Background()

	if deptPriority == nil {
		deptPriority = wpcore.DeriveDeptPriority(cases, nil)
	}

	var diags []wperrors.Diagnostic
	valid, skipped := filterValidCases(cases, env)
	diags = append(diags, skipped...)

	if len(cases) == 0 || len(valid) == 0 {
		diags = append(diags, wperrors.Diagnostic{Kind: wperrors.EmptyInput, Phase: "Solve", Message: "no cases to pack"})
		return Result{Diagnostics: diags}, nil
	}

	lg.Phase(ctx, "split")
	groups := splitGroups(valid, env.Width)

	lg.Phase(ctx, "inventory")
	items := buildInventory(groups, env.Width)

	lg.Phase(ctx, "floor")
	floorElems := buildFloorWalls(items, env.Width)

	lg.Phase(ctx, "full_walls")
	fullWalls := buildFullWalls(items, env.Width)

	pools := buildOrphanPools(items)

	lg.Phase(ctx, "gap_fill")
	if err := gapFill(ctx, fullWalls, pools, env.Width, lg); err != nil {
		return Result{Diagnostics: diags}, err
	}

	lg.Phase(ctx, "kb_recipes")
	kbWalls := applyKBRecipes(pools, kbPatterns)

	lg.Phase(ctx, "orphan_ffd")
	orphanWalls := orphanFFD(ctx, pools, env.Width, lg)
	residualColumns := drainResidualColumns(pools)

	lg.Phase(ctx, "weak_wall_absorption")
	strongOrphans, leftoverColumns := weakWallAbsorption(ctx, fullWalls, orphanWalls, env.Width, lg)
	leftoverColumns = append(leftoverColumns, residualColumns...)

	lg.Phase(ctx, "column_rebuild")
	finalOrphans := columnRebuild(strongOrphans, leftoverColumns, env.Width, env.Height)

	var candidates []*wpcore.Wall
	candidates = append(candidates, fullWalls...)
	candidates = append(candidates, kbWalls...)
	candidates = append(candidates, finalOrphans...)

	lg.Phase(ctx, "order")
	scored := orderWalls(candidates, env.Width, env.Height, deptPriority)
	stages := buildStages(scored)

	lg.Phase(ctx, "emit")
	res, spilled, counter, yPos := emit(floorElems, stages, env.Width)
	for _, sp := range spilled {
		diags = append(diags, wperrors.Diagnostic{Kind: wperrors.Spillover, Phase: "Emit", Message: "column overflowed truck width, queued for recovery", CaseID: sp.Case.ID})
		lg.Action(ctx, "emit", "column overflowed truck width, queued for spillover recovery")
	}

	lg.Phase(ctx, "spillover_recovery")
	spillSections, spillPlacements := recoverSpillovers(spilled, counter, yPos, env.Width)
	res.wallSections = append(res.wallSections, spillSections...)
	res.placements = append(res.placements, spillPlacements...)

	lg.Phase(ctx, "validate")
	var v wperrors.Violations
	validate(res.placements, res.wallSections, env, &v)
	for _, e := range v.Errors() {
		if d, ok := e.(wperrors.Diagnostic); ok {
			diags = append(diags, d)
			lg.Violation(ctx, d.Kind.String(), d.Message)
		}
	}

	return Result{
		Placements:   res.placements,
		WallSections: res.wallSections,
		Diagnostics:  diags,
	}, nil
}

// filterValidCases drops any case with a non-positive dimension or an
// unusable truck envelope (InvalidCase, spec §7): it is skipped with a
// diagnostic rather than failing the whole solve.
func filterValidCases(cases []wpcore.Case, env wpcore.TruckEnvelope) ([]wpcore.Case, []wperrors.Diagnostic) {
	var diags []wperrors.Diagnostic
	if env.Width <= 0 || env.Length <= 0 || env.Height <= 0 {
		diags = append(diags, wperrors.Diagnostic{Kind: wperrors.InvalidCase, Phase: "Solve", Message: fmt.Sprintf("invalid truck envelope %+v", env)})
		return nil, diags
	}
	valid := make([]wpcore.Case, 0, len(cases))
	for _, c := range cases {
		if c.Width <= 0 || c.Depth <= 0 || c.Height <= 0 {
			diags = append(diags, wperrors.Diagnostic{Kind: wperrors.InvalidCase, Phase: "Solve", Message: "non-positive dimension", CaseID: c.ID})
			continue
		}
		valid = append(valid, c)
	}
	return valid, diags
}
