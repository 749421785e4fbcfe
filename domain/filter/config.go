// Package filter holds the range constraints a candidate must satisfy.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"lotogen/domain/core"
	"lotogen/domain/stats"
)

// Range is an inclusive [Min, Max] bound
type Range struct {
	Min int `json:"min" toml:"min"`
	Max int `json:"max" toml:"max"`
}

// Contains reports whether v lies within the bound
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Widen returns the range grown by delta on each side
func (r Range) Widen(delta int) Range {
	return Range{Min: r.Min - delta, Max: r.Max + delta}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// Config bounds each of the seven candidate statistics.
// Values are plain data; use NewConfig or Validate before evaluating.
type Config struct {
	Pares     Range `json:"pares" toml:"pares"`
	Impares   Range `json:"impares" toml:"impares"`
	Primos    Range `json:"primos" toml:"primos"`
	Mult3     Range `json:"mult3" toml:"mult3"`
	Fibonacci Range `json:"fibonacci" toml:"fibonacci"`
	Soma      Range `json:"soma" toml:"soma"`
	Repetidas Range `json:"repetidas" toml:"repetidas"`
}

// DefaultConfig is the baseline observed in the historical results
func DefaultConfig() Config {
	return Config{
		Pares:     Range{Min: 6, Max: 9},
		Impares:   Range{Min: 6, Max: 9},
		Primos:    Range{Min: 4, Max: 7},
		Mult3:     Range{Min: 4, Max: 6},
		Fibonacci: Range{Min: 3, Max: 5},
		Soma:      Range{Min: 165, Max: 224},
		Repetidas: Range{Min: 8, Max: 11},
	}
}

// Open accepts every valid combination
func Open() Config {
	all := Range{Min: 0, Max: 15}
	return Config{
		Pares:     all,
		Impares:   all,
		Primos:    all,
		Mult3:     all,
		Fibonacci: all,
		Soma:      Range{Min: 0, Max: 325},
		Repetidas: all,
	}
}

// NewConfig applies overrides on top of base and validates the result
func NewConfig(base Config, overrides map[stats.Field]Range) (Config, error) {
	cfg := base
	for f, r := range overrides {
		cfg = cfg.With(f, r)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseOverrides converts keyed pairs ("pares" -> [6, 9]) into field overrides
func ParseOverrides(raw map[string][]int) (map[stats.Field]Range, error) {
	out := make(map[stats.Field]Range, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, ok := stats.ParseField(strings.ToLower(strings.TrimSpace(k)))
		if !ok {
			return nil, core.NewInvalidFilterConfigError(k, "unknown field")
		}
		pair := raw[k]
		if len(pair) != 2 {
			return nil, core.NewInvalidFilterConfigError(k, fmt.Sprintf("expected [min, max], got %d values", len(pair)))
		}
		out[f] = Range{Min: pair[0], Max: pair[1]}
	}
	return out, nil
}

// Range returns the bound configured for f
func (c Config) Range(f stats.Field) Range {
	switch f {
	case stats.FieldPares:
		return c.Pares
	case stats.FieldImpares:
		return c.Impares
	case stats.FieldPrimos:
		return c.Primos
	case stats.FieldMult3:
		return c.Mult3
	case stats.FieldFibonacci:
		return c.Fibonacci
	case stats.FieldSoma:
		return c.Soma
	case stats.FieldRepetidas:
		return c.Repetidas
	}
	return Range{}
}

// With returns a copy of c with the bound for f replaced
func (c Config) With(f stats.Field, r Range) Config {
	switch f {
	case stats.FieldPares:
		c.Pares = r
	case stats.FieldImpares:
		c.Impares = r
	case stats.FieldPrimos:
		c.Primos = r
	case stats.FieldMult3:
		c.Mult3 = r
	case stats.FieldFibonacci:
		c.Fibonacci = r
	case stats.FieldSoma:
		c.Soma = r
	case stats.FieldRepetidas:
		c.Repetidas = r
	}
	return c
}

// Validate rejects any bound with min > max
func (c Config) Validate() error {
	for _, f := range stats.Fields {
		r := c.Range(f)
		if r.Min > r.Max {
			return core.NewInvalidFilterConfigError(f.String(), fmt.Sprintf("min %d > max %d", r.Min, r.Max))
		}
	}
	return nil
}

// String renders the bounds in field order
func (c Config) String() string {
	parts := make([]string, 0, len(stats.Fields))
	for _, f := range stats.Fields {
		parts = append(parts, f.String()+"="+c.Range(f).String())
	}
	return strings.Join(parts, " ")
}
