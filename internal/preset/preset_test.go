package preset

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
	"github.com/cwbudde/algo-ott/dsp/ott"
)

const sample = `
depth = 80
inputGain = -3.5
gainMatch = true

[low]
ratioUp = 6
width = 150

[high]
solo = true
attack = 0.01
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	want := Preset{
		"depth":      80,
		"inputGain":  -3.5,
		"gainMatch":  1,
		"lowRatioUp": 6,
		"lowWidth":   150,
		"highSolo":   1,
		"highAttack": 0.01,
	}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("Parse = %v, want %v", p, want)
	}

	ids := p.IDs()
	if len(ids) != len(want) || ids[0] != "depth" || ids[len(ids)-1] != "lowWidth" {
		t.Fatalf("IDs = %v", ids)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "depth = "},
		{"unknown global", "loudness = 3"},
		{"unknown table", "[sub]\nratioUp = 2"},
		{"unknown band field", "[mid]\nknee = 6"},
		{"bool for number", "depth = true"},
		{"string value", `depth = "high"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParameters(t *testing.T) {
	p, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	params := p.Parameters()

	if params.DepthPercent != 80 || params.InputGainDB != -3.5 || !params.GainMatch {
		t.Fatalf("globals = %+v", params)
	}
	low := params.Bands[crossover.Low]
	if low.RatioUp != 6 || low.WidthPercent != 150 || low.RatioDown != 3 {
		t.Fatalf("low band = %+v", low)
	}
	high := params.Bands[crossover.High]
	if !high.Solo || high.AttackMs != 0.1 {
		t.Fatalf("high band = %+v (attack must clamp to 0.1 ms)", high)
	}
	if params.Bands[crossover.Mid] != ott.DefaultParameters().Bands[crossover.Mid] {
		t.Fatal("mid band should keep defaults")
	}
}

func TestApplyResetsUnmentioned(t *testing.T) {
	store := ott.NewAtomicParameters()
	if err := store.Set("outputGain", 9); err != nil {
		t.Fatal(err)
	}
	Preset{"depth": 10}.Apply(store)

	if v, _ := store.Get("outputGain"); v != 0 {
		t.Fatalf("outputGain = %v, want default 0", v)
	}
	if v, _ := store.Get("depth"); v != 10 {
		t.Fatalf("depth = %v, want 10", v)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	params := ott.DefaultParameters()
	params.DepthPercent = 35
	params.GainMatch = true
	params.Bands[crossover.Mid].ThreshDownDB = -12
	params.Bands[crossover.High].Solo = true

	var buf bytes.Buffer
	if err := Encode(&buf, params); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	for _, want := range []string{"[low]", "[mid]", "[high]", "gainMatch = true", "threshDown = -12.0"} {
		if !strings.Contains(text, want) {
			t.Fatalf("encoded preset lacks %q:\n%s", want, text)
		}
	}

	p, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != ott.NumParams {
		t.Fatalf("round trip has %d ids, want %d", len(p), ott.NumParams)
	}
	if got := p.Parameters(); got != params {
		t.Fatalf("round trip = %+v, want %+v", got, params)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p["depth"] != 80 {
		t.Fatalf("depth = %v", p["depth"])
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("bogus = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), bad) {
		t.Fatalf("err = %v, want error naming the file", err)
	}
}
