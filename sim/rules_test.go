package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/particle"
)

func testRules() RuleParams {
	return RuleParams{
		Rule1Distance: 5.0,
		Rule2Distance: 3.0,
		Rule3Distance: 5.0,
		Rule1Scale:    0.01,
		Rule2Scale:    0.1,
		Rule3Scale:    0.1,
		MaxSpeed:      1.0,
	}
}

func TestEmptyNeighborhoodKeepsVelocity(t *testing.T) {
	rules := testRules()
	var acc ruleAccum

	vel := particle.Vec3{X: 0.3, Y: -0.2, Z: 0.1}
	got := acc.finish(particle.Vec3{X: 50}, vel, &rules)

	if got != vel {
		t.Errorf("velocity = %v, want unchanged %v", got, vel)
	}
}

func TestEmptyNeighborhoodStillClamps(t *testing.T) {
	rules := testRules()
	var acc ruleAccum

	got := acc.finish(particle.Vec3{}, particle.Vec3{X: 5}, &rules)

	if math.Abs(float64(got.Len()-1)) > 1e-6 {
		t.Errorf("speed = %v, want clamped to 1", got.Len())
	}
	if got.Y != 0 || got.Z != 0 || got.X <= 0 {
		t.Errorf("clamp changed direction: %v", got)
	}
}

func TestSingleNeighborContributions(t *testing.T) {
	rules := testRules()

	// Neighbor 2 units along +x, moving along +y. All three rules trigger:
	//   cohesion:   (centroid − self)·0.01 = (2,0,0)·0.01  = (0.02, 0, 0)
	//   separation: −(neighbor − self)·0.1 = (−2,0,0)·0.1  = (−0.2, 0, 0)
	//   alignment:  avg neighbor vel·0.1   = (0,0.5,0)·0.1 = (0, 0.05, 0)
	var acc ruleAccum
	self := particle.Vec3{}
	acc.observe(self, particle.Vec3{X: 2}, particle.Vec3{Y: 0.5}, &rules)
	got := acc.finish(self, particle.Vec3{}, &rules)

	want := particle.Vec3{X: 0.02 - 0.2, Y: 0.05}
	if got.Sub(want).Len() > 1e-6 {
		t.Errorf("velocity = %v, want %v", got, want)
	}
}

func TestSeparationOnlyOutsideInnerRadius(t *testing.T) {
	rules := testRules()

	// Neighbor at distance 4: inside cohesion/alignment range (5) but
	// outside separation range (3).
	var acc ruleAccum
	self := particle.Vec3{}
	acc.observe(self, particle.Vec3{X: 4}, particle.Vec3{}, &rules)

	if acc.separation != (particle.Vec3{}) {
		t.Errorf("separation = %v, want zero at distance 4", acc.separation)
	}
	if acc.cohesionCount != 1 || acc.alignCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", acc.cohesionCount, acc.alignCount)
	}
}

func TestCohesionAveragesOverNeighbors(t *testing.T) {
	rules := testRules()

	// Two neighbors symmetric about the self particle: their centroid is
	// the self position, so cohesion contributes nothing; separation terms
	// also cancel; alignment averages their equal velocities.
	var acc ruleAccum
	self := particle.Vec3{}
	acc.observe(self, particle.Vec3{X: 2}, particle.Vec3{Z: 0.4}, &rules)
	acc.observe(self, particle.Vec3{X: -2}, particle.Vec3{Z: 0.4}, &rules)
	got := acc.finish(self, particle.Vec3{}, &rules)

	want := particle.Vec3{Z: 0.04}
	if got.Sub(want).Len() > 1e-6 {
		t.Errorf("velocity = %v, want %v", got, want)
	}
}

func TestMaxDistance(t *testing.T) {
	rules := testRules()
	if d := rules.MaxDistance(); d != 5.0 {
		t.Errorf("MaxDistance = %v, want 5", d)
	}

	rules.Rule2Distance = 9
	if d := rules.MaxDistance(); d != 9.0 {
		t.Errorf("MaxDistance = %v, want 9", d)
	}
}
