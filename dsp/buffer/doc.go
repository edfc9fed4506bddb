// Package buffer provides pre-sized planar block buffers for real-time
// processing. A Block is allocated once for a maximum length and channel
// count; per-block operations only re-slice, copy, and accumulate into the
// existing backing arrays, so the audio path never allocates.
package buffer
