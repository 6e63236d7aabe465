package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flock/particle"
)

// WindowStats holds aggregated flock statistics for one stats window,
// sampled from the committed buffers at the window's last step.
type WindowStats struct {
	WindowEnd int     `csv:"window_end"`
	SimTime   float64 `csv:"sim_time"`

	ParticleCount int `csv:"particles"`

	// Speed distribution
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Spatial spread: per-axis standard deviation of positions, a cheap
	// proxy for how tightly the flock has condensed.
	SpreadX float64 `csv:"spread_x"`
	SpreadY float64 `csv:"spread_y"`
	SpreadZ float64 `csv:"spread_z"`
}

// ComputeWindowStats samples the committed state at the end of a window.
func ComputeWindowStats(step int, simTime float64, pos, vel []particle.Vec3) WindowStats {
	ws := WindowStats{
		WindowEnd:     step,
		SimTime:       simTime,
		ParticleCount: len(pos),
	}
	if len(pos) == 0 {
		return ws
	}

	speeds := make([]float64, len(vel))
	for i, v := range vel {
		speeds[i] = float64(v.Len())
	}
	sort.Float64s(speeds)

	ws.SpeedMean = stat.Mean(speeds, nil)
	ws.SpeedP10 = stat.Quantile(0.10, stat.Empirical, speeds, nil)
	ws.SpeedP50 = stat.Quantile(0.50, stat.Empirical, speeds, nil)
	ws.SpeedP90 = stat.Quantile(0.90, stat.Empirical, speeds, nil)
	ws.SpeedMax = speeds[len(speeds)-1]

	xs := make([]float64, len(pos))
	ys := make([]float64, len(pos))
	zs := make([]float64, len(pos))
	for i, p := range pos {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
		zs[i] = float64(p.Z)
	}
	ws.SpreadX = stat.StdDev(xs, nil)
	ws.SpreadY = stat.StdDev(ys, nil)
	ws.SpreadZ = stat.StdDev(zs, nil)

	return ws
}

// LogStats emits the window stats via slog.
func (ws WindowStats) LogStats() {
	slog.Info("window_stats",
		"window_end", ws.WindowEnd,
		"sim_time", ws.SimTime,
		"particles", ws.ParticleCount,
		"speed_mean", ws.SpeedMean,
		"speed_p50", ws.SpeedP50,
		"speed_p90", ws.SpeedP90,
		"speed_max", ws.SpeedMax,
		"spread_x", ws.SpreadX,
		"spread_y", ws.SpreadY,
		"spread_z", ws.SpreadZ,
	)
}
