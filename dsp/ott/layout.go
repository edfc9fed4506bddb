package ott

import (
	"fmt"

	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
)

// ParamSpec describes one automatable control.
type ParamSpec struct {
	ID      string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Toggle  bool
}

const (
	paramDepth = iota
	paramInputGain
	paramOutputGain
	paramTime
	paramGainMatch

	numGlobalParams
)

const (
	bandThreshDown = iota
	bandRatioDown
	bandThreshUp
	bandRatioUp
	bandAttack
	bandRelease
	bandGain
	bandWidth
	bandSolo

	numBandParams
)

// NumParams is the number of controls in the layout.
const NumParams = numGlobalParams + crossover.NumBands*numBandParams

var globalSpecs = [numGlobalParams]ParamSpec{
	paramDepth:      {ID: "depth", Name: "Depth", Unit: "%", Min: 0, Max: 100, Default: 50},
	paramInputGain:  {ID: "inputGain", Name: "Input Gain", Unit: "dB", Min: -12, Max: 12, Default: 0},
	paramOutputGain: {ID: "outputGain", Name: "Output Gain", Unit: "dB", Min: -12, Max: 12, Default: 0},
	paramTime:       {ID: "time", Name: "Time", Unit: "%", Min: 0, Max: 1000, Default: 100},
	paramGainMatch:  {ID: "gainMatch", Name: "Gain Match", Max: 1, Toggle: true},
}

var bandSpecs = [numBandParams]ParamSpec{
	bandThreshDown: {ID: "ThreshDown", Name: "Threshold Down", Unit: "dB", Min: -60, Max: 0, Default: -20},
	bandRatioDown:  {ID: "RatioDown", Name: "Ratio Down", Unit: ":1", Min: 1, Max: 20, Default: 3},
	bandThreshUp:   {ID: "ThreshUp", Name: "Threshold Up", Unit: "dB", Min: -60, Max: 0, Default: -40},
	bandRatioUp:    {ID: "RatioUp", Name: "Ratio Up", Unit: ":1", Min: 1, Max: 20, Default: 2},
	bandAttack:     {ID: "Attack", Name: "Attack", Unit: "ms", Min: 0.1, Max: 100, Default: 1},
	bandRelease:    {ID: "Release", Name: "Release", Unit: "ms", Min: 10, Max: 1000, Default: 100},
	bandGain:       {ID: "Gain", Name: "Gain", Unit: "dB", Min: -12, Max: 12, Default: 0},
	bandWidth:      {ID: "Width", Name: "Width", Unit: "%", Min: 0, Max: 200, Default: 100},
	bandSolo:       {ID: "Solo", Name: "Solo", Max: 1, Toggle: true},
}

var bandTitles = [crossover.NumBands]string{"Low", "Mid", "High"}

// layout lists every control: the globals followed by each band's controls,
// low to high. Band ids are the band name prefixed to the control id
// ("lowRatioUp").
var layout = buildLayout()

var layoutIndex = func() map[string]int {
	m := make(map[string]int, len(layout))
	for i, s := range layout {
		m[s.ID] = i
	}
	return m
}()

func buildLayout() [NumParams]ParamSpec {
	var l [NumParams]ParamSpec
	copy(l[:], globalSpecs[:])

	for b := range crossover.NumBands {
		prefix := crossover.Band(b).String()
		for f, s := range bandSpecs {
			s.ID = prefix + s.ID
			s.Name = fmt.Sprintf("%s %s", bandTitles[b], s.Name)
			l[numGlobalParams+b*numBandParams+f] = s
		}
	}
	return l
}

// Layout returns the control table in layout order.
func Layout() []ParamSpec {
	out := make([]ParamSpec, len(layout))
	copy(out, layout[:])
	return out
}

// Spec returns the description of the control with the given id.
func Spec(id string) (ParamSpec, bool) {
	i, ok := indexOf(id)
	if !ok {
		return ParamSpec{}, false
	}
	return layout[i], true
}

func indexOf(id string) (int, bool) {
	i, ok := layoutIndex[id]
	return i, ok
}
