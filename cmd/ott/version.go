package main

import (
	"log/slog"
	"os"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-ott/internal/cli"
)

// VersionCmd prints the version and the SIMD features used by the block
// math.
type VersionCmd struct{}

func (c *VersionCmd) Run(logger *slog.Logger) error {
	f := cpu.DetectFeatures()
	logger.Debug("cpu", "arch", f.Architecture, "force_generic", f.ForceGeneric)
	cli.PrintVersion(os.Stdout, version, simdFeatures(f))
	return nil
}

func simdFeatures(f cpu.Features) []string {
	if f.ForceGeneric {
		return nil
	}
	var out []string
	for _, feat := range []struct {
		name string
		ok   bool
	}{
		{"SSE2", f.HasSSE2},
		{"AVX", f.HasAVX},
		{"AVX2", f.HasAVX2},
		{"AVX-512", f.HasAVX512},
		{"NEON", f.HasNEON},
	} {
		if feat.ok {
			out = append(out, feat.name)
		}
	}
	return out
}
