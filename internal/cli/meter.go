package cli

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-ott/dsp/core"
	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
	"github.com/cwbudde/algo-ott/dsp/ott"
)

// MeterFloorDB is the level shown as an empty meter.
const MeterFloorDB = -60.0

// MeterBar draws levelDB as a bar of width cells between MeterFloorDB and
// 0 dB.
func MeterBar(levelDB float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := core.Clamp((levelDB-MeterFloorDB)/-MeterFloorDB, 0, 1)
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderTelemetry formats one status line: input and output levels, one
// colored meter per band and the macro controls. Band levels are linear
// RMS.
func RenderTelemetry(t ott.Telemetry, meterWidth int) string {
	var sb strings.Builder
	sb.WriteString(KeyValue("in", fmt.Sprintf("%6.1f dB", t.InputLevelDB)))
	sb.WriteString("  ")
	sb.WriteString(KeyValue("out", fmt.Sprintf("%6.1f dB", t.OutputLevelDB)))
	for b := range crossover.NumBands {
		sb.WriteString("  ")
		sb.WriteString(KeyStyle.Render(crossover.Band(b).String()))
		sb.WriteString(" ")
		sb.WriteString(bandStyles[b].Render(MeterBar(core.LevelDB(t.BandLevels[b]), meterWidth)))
	}
	sb.WriteString("  ")
	sb.WriteString(KeyValue("depth", fmt.Sprintf("%.0f%%", t.DepthPercent)))
	sb.WriteString(" ")
	sb.WriteString(KeyValue("up", fmt.Sprintf("%.0f%%", t.UpwardPercent)))
	sb.WriteString(" ")
	sb.WriteString(KeyValue("down", fmt.Sprintf("%.0f%%", t.DownwardPercent)))
	if t.GainMatchEnabled {
		sb.WriteString(" ")
		sb.WriteString(ValueStyle.Render("GM"))
	}
	return sb.String()
}
