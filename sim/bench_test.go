package sim

import (
	"testing"
)

func benchSim(b *testing.B, n int) *Simulation {
	cfg := defaultConfig(b)
	s := New(cfg, testField(n, cfg.Derived.SceneScale32))
	b.Cleanup(s.Close)
	return s
}

func BenchmarkStepBruteForce(b *testing.B) {
	s := benchSim(b, 2000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.StepBruteForce(0.2)
	}
}

func BenchmarkStepScatteredGrid(b *testing.B) {
	s := benchSim(b, 2000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.StepScatteredGrid(0.2)
	}
}

func BenchmarkStepCoherentGrid(b *testing.B) {
	s := benchSim(b, 2000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.StepCoherentGrid(0.2)
	}
}
