package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(10)

	for i := 0; i < 3; i++ {
		p.StartStep()
		p.StartPhase(PhaseSort)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhaseEvaluate)
		time.Sleep(2 * time.Millisecond)
		p.EndStep()
	}

	stats := p.Stats()

	if stats.AvgStepDuration <= 0 {
		t.Fatal("average step duration not recorded")
	}
	if stats.PhaseAvg[PhaseSort] <= 0 || stats.PhaseAvg[PhaseEvaluate] <= 0 {
		t.Fatalf("phase averages missing: %v", stats.PhaseAvg)
	}
	if stats.PhaseAvg[PhaseEvaluate] <= stats.PhaseAvg[PhaseSort] {
		t.Errorf("evaluate (%v) should dominate sort (%v)",
			stats.PhaseAvg[PhaseEvaluate], stats.PhaseAvg[PhaseSort])
	}
	if stats.MinStepDuration > stats.MaxStepDuration {
		t.Errorf("min %v > max %v", stats.MinStepDuration, stats.MaxStepDuration)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(5)
	stats := p.Stats()

	if stats.AvgStepDuration != 0 || stats.StepsPerSecond != 0 {
		t.Error("empty collector should report zeroed stats")
	}
}

func TestPerfCollectorWindowRolls(t *testing.T) {
	p := NewPerfCollector(2)

	for i := 0; i < 5; i++ {
		p.StartStep()
		p.EndStep()
	}

	if p.sampleCount != 2 {
		t.Errorf("sampleCount = %d, want window size 2", p.sampleCount)
	}
}
