package dynamics

import "github.com/cwbudde/algo-ott/dsp/core"

// GainComputer holds the two-stage OTT gain law. Downward compression acts
// above ThreshDownDB, upward expansion below ThreshUpDB; both may act on the
// same level.
type GainComputer struct {
	ThreshDownDB float64
	RatioDown    float64
	ThreshUpDB   float64
	RatioUp      float64
}

// unityRatio maps ratios below 1 (including NaN) to 1.
func unityRatio(r float64) float64 {
	if !(r >= 1) {
		return 1
	}
	return r
}

// GainDB returns the gain change in dB for an envelope level in dB.
func (g GainComputer) GainDB(levelDB float64) float64 {
	var gainDB float64

	// A ratio of 1 leaves its stage inactive.
	if r := unityRatio(g.RatioDown); r > 1 && levelDB > g.ThreshDownDB {
		target := g.ThreshDownDB + (levelDB-g.ThreshDownDB)/r
		gainDB += target - levelDB
	}

	if r := unityRatio(g.RatioUp); r > 1 && levelDB < g.ThreshUpDB {
		target := levelDB + (g.ThreshUpDB-levelDB)*(1-1/r)
		gainDB += target - levelDB
	}

	return gainDB
}

// Gain returns the linear gain multiplier for a linear envelope value.
// The envelope is floored by [core.LevelFloor] before the dB conversion.
func (g GainComputer) Gain(envelope float64) float64 {
	levelDB := 20 * mathLog10(envelope+core.LevelFloor)

	gainDB := g.GainDB(levelDB)
	if gainDB == 0 {
		return 1
	}
	return mathPower10(gainDB / 20)
}
