// Package sim ties the grid pipeline together into a steppable flocking
// simulation: the three neighborhood rules, three interchangeable neighbor
// search strategies, the integrator, and the step state machine.
package sim

import (
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/particle"
)

// RuleParams holds the flocking rule constants as float32, mirrored out of
// the config once at init so the hot path never touches float64.
type RuleParams struct {
	Rule1Distance float32 // Cohesion radius
	Rule2Distance float32 // Separation radius
	Rule3Distance float32 // Alignment radius
	Rule1Scale    float32
	Rule2Scale    float32
	Rule3Scale    float32
	MaxSpeed      float32
}

// RuleParamsFromConfig mirrors the rule section of cfg into float32 form.
func RuleParamsFromConfig(cfg *config.Config) RuleParams {
	return RuleParams{
		Rule1Distance: float32(cfg.Rules.Rule1Distance),
		Rule2Distance: float32(cfg.Rules.Rule2Distance),
		Rule3Distance: float32(cfg.Rules.Rule3Distance),
		Rule1Scale:    float32(cfg.Rules.Rule1Scale),
		Rule2Scale:    float32(cfg.Rules.Rule2Scale),
		Rule3Scale:    float32(cfg.Rules.Rule3Scale),
		MaxSpeed:      float32(cfg.Rules.MaxSpeed),
	}
}

// MaxDistance returns the largest of the three rule radii. The grid cell
// width is derived from it.
func (p *RuleParams) MaxDistance() float32 {
	d := p.Rule1Distance
	if p.Rule2Distance > d {
		d = p.Rule2Distance
	}
	if p.Rule3Distance > d {
		d = p.Rule3Distance
	}
	return d
}

// ruleAccum accumulates the three rule terms over one particle's candidate
// neighbors. All strategies share it, so brute force and the two grid
// searches differ only in which candidates they visit.
type ruleAccum struct {
	perceivedCenter particle.Vec3 // Summed neighbor positions (rule 1)
	cohesionCount   int32
	separation      particle.Vec3 // Accumulated away-from-neighbor offsets (rule 2)
	velocitySum     particle.Vec3 // Summed neighbor velocities (rule 3)
	alignCount      int32
}

// observe feeds one candidate neighbor into the accumulator. The caller is
// responsible for excluding the particle itself.
func (a *ruleAccum) observe(self, otherPos, otherVel particle.Vec3, p *RuleParams) {
	vec := otherPos.Sub(self)
	dist := vec.Len()

	if dist < p.Rule1Distance {
		a.perceivedCenter = a.perceivedCenter.Add(otherPos)
		a.cohesionCount++
	}
	if dist < p.Rule2Distance {
		// Unconditional subtraction, no averaging: crowding pushes harder.
		a.separation = a.separation.Sub(vec)
	}
	if dist < p.Rule3Distance {
		a.velocitySum = a.velocitySum.Add(otherVel)
		a.alignCount++
	}
}

// finish folds the accumulated rule terms into the particle's velocity and
// clamps the result to MaxSpeed, preserving direction. With no neighbors in
// range all three terms are zero and the velocity passes through unchanged
// (modulo the clamp).
func (a *ruleAccum) finish(selfPos, selfVel particle.Vec3, p *RuleParams) particle.Vec3 {
	v := selfVel
	if a.cohesionCount > 0 {
		center := a.perceivedCenter.Scale(1 / float32(a.cohesionCount))
		v = v.Add(center.Sub(selfPos).Scale(p.Rule1Scale))
	}
	v = v.Add(a.separation.Scale(p.Rule2Scale))
	if a.alignCount > 0 {
		avg := a.velocitySum.Scale(1 / float32(a.alignCount))
		v = v.Add(avg.Scale(p.Rule3Scale))
	}
	return v.Clamped(p.MaxSpeed)
}
