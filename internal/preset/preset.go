// Package preset loads TOML presets into the processor's parameter store.
//
// A preset lists global controls at the top level and band controls in
// [low], [mid] and [high] tables, using the parameter ids of the layout:
//
//	depth = 80
//	gainMatch = true
//
//	[low]
//	ratioUp = 6
//	width = 120
//
// Controls a preset does not mention keep their defaults.
package preset

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cwbudde/algo-ott/dsp/filter/crossover"
	"github.com/cwbudde/algo-ott/dsp/ott"
)

// Preset maps parameter ids to values. Toggles are stored as 0 or 1.
type Preset map[string]float64

// Parse decodes a TOML preset and checks every key against the parameter
// layout.
func Parse(data []byte) (Preset, error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}

	p := Preset{}
	for key, v := range raw {
		if table, ok := v.(map[string]any); ok {
			band, ok := bandByName(key)
			if !ok {
				return nil, fmt.Errorf("preset: unknown table [%s]", key)
			}
			for field, fv := range table {
				if err := p.set(bandID(band, field), fv); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := p.set(key, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Load reads and parses the preset file at path.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p Preset) set(id string, v any) error {
	spec, ok := ott.Spec(id)
	if !ok {
		return fmt.Errorf("preset: unknown parameter %q", id)
	}

	var f float64
	switch x := v.(type) {
	case bool:
		if !spec.Toggle {
			return fmt.Errorf("preset: %s expects a number", id)
		}
		if x {
			f = 1
		}
	case int64:
		f = float64(x)
	case float64:
		f = x
	default:
		return fmt.Errorf("preset: %s: unsupported value %v (%T)", id, v, v)
	}
	p[id] = f
	return nil
}

// Parameters returns the default parameters with the preset applied.
// Values are clamped to their ranges.
func (p Preset) Parameters() ott.Parameters {
	params := ott.DefaultParameters()
	for id, v := range p {
		params.Set(id, v)
	}
	return params
}

// Apply stores the preset into store, resetting unmentioned controls to
// their defaults.
func (p Preset) Apply(store *ott.AtomicParameters) {
	store.Apply(p.Parameters())
}

// IDs returns the preset's parameter ids in sorted order.
func (p Preset) IDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Encode writes params as a complete preset.
func Encode(w io.Writer, params ott.Parameters) error {
	doc := map[string]any{}
	for _, spec := range ott.Layout() {
		v, _ := params.Get(spec.ID)
		var value any = v
		if spec.Toggle {
			value = v != 0
		}

		band, field, ok := splitBandID(spec.ID)
		if !ok {
			doc[spec.ID] = value
			continue
		}
		table, _ := doc[band].(map[string]any)
		if table == nil {
			table = map[string]any{}
			doc[band] = table
		}
		table[field] = value
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("preset: encode: %w", err)
	}
	return nil
}

func bandByName(name string) (crossover.Band, bool) {
	for b := range crossover.NumBands {
		if crossover.Band(b).String() == name {
			return crossover.Band(b), true
		}
	}
	return 0, false
}

// bandID maps a table key such as "ratioUp" in [low] to "lowRatioUp".
func bandID(b crossover.Band, field string) string {
	if field == "" {
		return b.String()
	}
	return b.String() + strings.ToUpper(field[:1]) + field[1:]
}

func splitBandID(id string) (band, field string, ok bool) {
	for b := range crossover.NumBands {
		name := crossover.Band(b).String()
		rest, found := strings.CutPrefix(id, name)
		if found && rest != "" {
			return name, strings.ToLower(rest[:1]) + rest[1:], true
		}
	}
	return "", "", false
}
