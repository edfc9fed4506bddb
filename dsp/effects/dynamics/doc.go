// Package dynamics provides the per-band dynamics stage of a multiband
// "OTT" processor.
//
// Included building blocks:
//   - Envelope: attack/release one-pole follower of |x| with per-sample
//     branch selection (attack while rising, release while falling).
//   - GainComputer: combined downward-compression and upward-expansion gain
//     law driven by one shared envelope level.
//   - BandProcessor: per-channel envelopes plus a gain computer and makeup
//     gain, processing one band buffer in place.
//
// Build with -tags fastmath to route the dB conversions of the gain law
// through github.com/meko-christian/algo-approx.
package dynamics
