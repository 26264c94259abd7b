package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"gravity-sandbox/internal/world"
)

// Default constants, calibrated for the built-in scene (pixels as world units).
const (
	DefaultG              = 6.672e-11
	DefaultMergeThreshold = 250.0 // squared world units
)

// MergeMode selects how velocities combine when two bodies merge.
type MergeMode int

const (
	// MergeApprox adds the absorbed velocity scaled by absorbed/combined mass to the survivor's
	// velocity. Not momentum conserving; this is the sandbox's historical behaviour.
	MergeApprox MergeMode = iota
	// MergeMomentum gives the survivor the mass-weighted mean velocity (perfectly inelastic).
	MergeMomentum
)

// MergePolicy decides whether positions are integrated in a call that performed a merge.
type MergePolicy int

const (
	// SkipIntegration leaves every position untouched in a call that merged.
	SkipIntegration MergePolicy = iota
	// ContinueIntegration still stops the pair scan at the merge but integrates positions.
	ContinueIntegration
)

// OutcomeKind tags the result of one pair scan.
type OutcomeKind int

const (
	NoCollision OutcomeKind = iota
	Merged
)

// Outcome reports what Advance did. For Merged, Survivor is the survivor's index after the
// swap-remove and Absorbed is the index the absorbed body had when the merge happened.
type Outcome struct {
	Kind       OutcomeKind
	Survivor   int
	Absorbed   int
	Integrated bool
}

// Params configures a Stepper.
type Params struct {
	G              float64
	MergeThreshold float64 // squared distance below which a pair merges; must be > 0
	Merge          MergeMode
	OnMerge        MergePolicy
}

// DefaultParams returns the sandbox defaults: historical merge and skip-on-merge.
func DefaultParams() Params {
	return Params{
		G:              DefaultG,
		MergeThreshold: DefaultMergeThreshold,
		Merge:          MergeApprox,
		OnMerge:        SkipIntegration,
	}
}

// Validate reports parameters that would break the step (a non-positive threshold lets two
// coincident bodies reach the force division).
func (p Params) Validate() error {
	if !(p.MergeThreshold > 0) {
		return fmt.Errorf("physics: merge threshold %v must be positive", p.MergeThreshold)
	}
	if p.G < 0 || math.IsNaN(p.G) || math.IsInf(p.G, 0) {
		return fmt.Errorf("physics: gravitational constant %v must be finite and non-negative", p.G)
	}
	if p.Merge != MergeApprox && p.Merge != MergeMomentum {
		return fmt.Errorf("physics: unknown merge mode %d", p.Merge)
	}
	if p.OnMerge != SkipIntegration && p.OnMerge != ContinueIntegration {
		return fmt.Errorf("physics: unknown merge policy %d", p.OnMerge)
	}
	return nil
}

// Stepper advances a body store under pairwise inverse-square gravity with merge on close approach.
type Stepper struct {
	Params Params
}

// NewStepper returns a Stepper using p.
func NewStepper(p Params) *Stepper {
	return &Stepper{Params: p}
}

// Advance moves the store forward by dt seconds. Every unordered pair is visited once
// (j < i); the first pair closer than the merge threshold is merged and ends the scan, so
// at most one body is removed per call. Whether positions then integrate is the OnMerge policy.
// Positions integrate after velocities (semi-implicit Euler).
func (st *Stepper) Advance(s *world.Store, dt float64) Outcome {
	out := st.scan(s, dt)
	if out.Kind == Merged && st.Params.OnMerge == SkipIntegration {
		return out
	}
	for i := 0; i < s.Len(); i++ {
		s.SetPos(i, s.Pos(i).Add(s.Vel(i).Mul(dt)))
	}
	out.Integrated = true
	return out
}

// scan accumulates pairwise velocity changes until the first merge.
func (st *Stepper) scan(s *world.Store, dt float64) Outcome {
	g := st.Params.G
	for i := 1; i < s.Len(); i++ {
		for j := 0; j < i; j++ {
			diff := s.Pos(j).Sub(s.Pos(i))
			dist2 := diff.Dot(diff)
			if dist2 < st.Params.MergeThreshold {
				return st.merge(s, i, j)
			}
			dist := math.Sqrt(dist2)
			dir := mgl64.Vec2{diff[0] / dist, diff[1] / dist}
			accI := g * s.Mass(j) / dist2
			accJ := g * s.Mass(i) / dist2
			s.SetVel(i, s.Vel(i).Add(dir.Mul(accI).Mul(dt)))
			s.SetVel(j, s.Vel(j).Sub(dir.Mul(accJ).Mul(dt)))
		}
	}
	return Outcome{Kind: NoCollision}
}

// merge folds the lighter of i and j into the heavier one (j wins only when strictly heavier)
// and removes the lighter.
func (st *Stepper) merge(s *world.Store, i, j int) Outcome {
	big, small := i, j
	if s.Mass(j) > s.Mass(i) {
		big, small = j, i
	}
	mBig, mSmall := s.Mass(big), s.Mass(small)
	total := mBig + mSmall
	s.SetMass(big, total)

	switch st.Params.Merge {
	case MergeMomentum:
		v := s.Vel(big).Mul(mBig).Add(s.Vel(small).Mul(mSmall)).Mul(1 / total)
		s.SetVel(big, v)
	default:
		factor := mSmall / total
		s.SetVel(big, s.Vel(big).Add(s.Vel(small).Mul(factor)))
	}

	survivor := big
	if big == s.Len()-1 {
		survivor = small
	}
	s.Remove(small)
	return Outcome{Kind: Merged, Survivor: survivor, Absorbed: small}
}
