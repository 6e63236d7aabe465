package telemetry

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DataDog/zstd"

	"github.com/pthm-cable/flock/particle"
)

// Snapshot file layout: a fixed little-endian header followed by a single
// zstd block holding positions then velocities as packed float32 triples.

// SnapshotMagic identifies a flock snapshot file.
const SnapshotMagic = uint32(0x464c4b31) // "FLK1"

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = uint32(1)

// zstd compression level for snapshots. Level 1 trades ratio for speed;
// snapshots are written mid-run.
const snapshotZstdLevel = 1

// Snapshot holds one committed simulation state.
type Snapshot struct {
	Step       int
	Positions  []particle.Vec3
	Velocities []particle.Vec3
}

// SaveSnapshot writes a compressed snapshot to dir and returns the path
// where it was saved.
func SaveSnapshot(snap *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	raw := &bytes.Buffer{}
	// binary.Write handles []Vec3 directly: fixed-size struct of float32s.
	if err := binary.Write(raw, binary.LittleEndian, snap.Positions); err != nil {
		return "", fmt.Errorf("encoding positions: %w", err)
	}
	if err := binary.Write(raw, binary.LittleEndian, snap.Velocities); err != nil {
		return "", fmt.Errorf("encoding velocities: %w", err)
	}

	compressed, err := zstd.CompressLevel(nil, raw.Bytes(), snapshotZstdLevel)
	if err != nil {
		return "", fmt.Errorf("compressing snapshot: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.flk", snap.Step))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	header := []uint32{
		SnapshotMagic,
		SnapshotVersion,
		uint32(snap.Step),
		uint32(len(snap.Positions)),
	}
	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return "", fmt.Errorf("writing snapshot header: %w", err)
	}
	if _, err := f.Write(compressed); err != nil {
		return "", fmt.Errorf("writing snapshot body: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot file written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if len(data) < 16 {
		return nil, fmt.Errorf("snapshot %s: truncated header", path)
	}

	header := make([]uint32, 4)
	if err := binary.Read(bytes.NewReader(data[:16]), binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}
	if header[0] != SnapshotMagic {
		return nil, fmt.Errorf("snapshot %s: bad magic %#x", path, header[0])
	}
	if header[1] != SnapshotVersion {
		return nil, fmt.Errorf("snapshot %s: unsupported version %d", path, header[1])
	}

	step := int(header[2])
	count := int(header[3])

	raw, err := zstd.Decompress(nil, data[16:])
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}
	want := count * 2 * 12 // two Vec3 arrays, 3 float32 each
	if len(raw) != want {
		return nil, fmt.Errorf("snapshot %s: payload is %d bytes, want %d", path, len(raw), want)
	}

	snap := &Snapshot{
		Step:       step,
		Positions:  make([]particle.Vec3, count),
		Velocities: make([]particle.Vec3, count),
	}
	r := bytes.NewReader(raw)
	if err := binary.Read(r, binary.LittleEndian, snap.Positions); err != nil {
		return nil, fmt.Errorf("decoding positions: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, snap.Velocities); err != nil {
		return nil, fmt.Errorf("decoding velocities: %w", err)
	}

	return snap, nil
}
