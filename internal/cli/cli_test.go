package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-ott/dsp/ott"
)

func TestMeterBar(t *testing.T) {
	tests := []struct {
		level float64
		width int
		want  string
	}{
		{0, 4, "████"},
		{6, 4, "████"},
		{-30, 4, "██░░"},
		{-60, 4, "░░░░"},
		{-100, 4, "░░░░"},
		{-15, 4, "███░"},
		{-10, 0, ""},
	}
	for _, tt := range tests {
		if got := MeterBar(tt.level, tt.width); got != tt.want {
			t.Errorf("MeterBar(%v, %d) = %q, want %q", tt.level, tt.width, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		id    string
		value float64
		want  string
	}{
		{"depth", 50, "50%"},
		{"lowRatioUp", 2.5, "2.5:1"},
		{"midAttack", 1, "1 ms"},
		{"inputGain", -3, "-3 dB"},
		{"gainMatch", 1, "on"},
		{"highSolo", 0, "off"},
	}
	for _, tt := range tests {
		spec, ok := ott.Spec(tt.id)
		if !ok {
			t.Fatalf("unknown id %q", tt.id)
		}
		if got := FormatValue(spec, tt.value); got != tt.want {
			t.Errorf("FormatValue(%s, %v) = %q, want %q", tt.id, tt.value, got, tt.want)
		}
	}
}

func TestRenderTelemetry(t *testing.T) {
	line := RenderTelemetry(ott.Telemetry{
		InputLevelDB:     -12.34,
		OutputLevelDB:    -6,
		DepthPercent:     80,
		UpwardPercent:    25,
		DownwardPercent:  5,
		GainMatchEnabled: true,
		BandLevels:       [3]float64{1, 0.001, 0.0316227766},
	}, 4)

	for _, want := range []string{"-12.3 dB", "-6.0 dB", "low", "mid", "high", "depth", "80%", "25%", "5%", "GM", "████", "██░░"} {
		if !strings.Contains(line, want) {
			t.Errorf("telemetry line %q lacks %q", line, want)
		}
	}
}

func TestPrintParams(t *testing.T) {
	var buf bytes.Buffer
	PrintParams(&buf, ott.DefaultParameters())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != ott.NumParams {
		t.Fatalf("got %d rows, want %d", len(lines), ott.NumParams)
	}
	if !strings.Contains(lines[0], "depth") || !strings.Contains(lines[0], "[0%, 100%]") {
		t.Errorf("first row = %q", lines[0])
	}
	if last := lines[len(lines)-1]; !strings.Contains(last, "highSolo") || !strings.Contains(last, "off") {
		t.Errorf("last row = %q", last)
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "1.2.3", nil)
	out := buf.String()
	if !strings.Contains(out, "1.2.3") || !strings.Contains(out, "generic") {
		t.Fatalf("version output = %q", out)
	}
}

type helpCLI struct {
	Render struct {
		Input string  `arg:"" help:"Input file."`
		Depth float64 `short:"d" default:"50" help:"Depth in percent."`
	} `cmd:"" help:"Render a file."`
	Params struct{} `cmd:"" help:"List parameters."`
}

func TestStyledHelpPrinter(t *testing.T) {
	var out bytes.Buffer
	var cli helpCLI
	parser, err := kong.New(&cli,
		kong.Name("ott"),
		kong.Writers(&out, &out),
		kong.Exit(func(int) {}),
		kong.Help(StyledHelpPrinter("ott test")),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, _ = parser.Parse([]string{"--help"})
	root := out.String()
	for _, want := range []string{"ott test", "Commands:", "render", "Render a file.", "params", "--help"} {
		if !strings.Contains(root, want) {
			t.Errorf("root help lacks %q:\n%s", want, root)
		}
	}

	out.Reset()
	_, _ = parser.Parse([]string{"render", "--help"})
	sub := out.String()
	for _, want := range []string{"Arguments:", "<input>", "-d, --depth=", "(default: 50)"} {
		if !strings.Contains(sub, want) {
			t.Errorf("render help lacks %q:\n%s", want, sub)
		}
	}
}
