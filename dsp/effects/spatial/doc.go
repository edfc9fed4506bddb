// Package spatial provides reusable non-I/O spatial audio effects.
//
// Included processors:
//   - StereoWidener: Mid/side stereo image widening and narrowing.
package spatial
