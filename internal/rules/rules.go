// Package rules holds the declarative rewrite corpus and assembles it into
// validated rewrites, grouped and tagged by soundness class.
package rules

import (
	"fmt"
	"strings"
)

// Soundness classifies how far a group's rules can be trusted
type Soundness string

const (
	// FPSafe rules hold under IEEE floating point
	FPSafe Soundness = "fp-safe"
	// FPSafeNaN rules hold under floating point except for NaN inputs
	FPSafeNaN Soundness = "fp-safe-nan"
	// Exact rules hold over the reals but may change floating-point results
	Exact Soundness = "exact"
)

// AllSoundness lists the classes from most to least conservative
func AllSoundness() []Soundness {
	return []Soundness{FPSafe, FPSafeNaN, Exact}
}

// ParseSoundness resolves a class name
func ParseSoundness(name string) (Soundness, error) {
	for _, s := range AllSoundness() {
		if string(s) == name {
			return s, nil
		}
	}
	names := make([]string, 0, 3)
	for _, s := range AllSoundness() {
		names = append(names, string(s))
	}
	return "", fmt.Errorf("unknown soundness class %q (expected one of %s)", name, strings.Join(names, ", "))
}

// Rule is one rewrite written as pattern text
type Rule struct {
	Name string `yaml:"name"`
	LHS  string `yaml:"lhs"`
	RHS  string `yaml:"rhs"`
}

// Definition is a named group of rules sharing a soundness class
type Definition struct {
	Name      string    `yaml:"name"`
	Soundness Soundness `yaml:"soundness"`
	Rules     []Rule    `yaml:"rules"`
}

// Builtin returns a copy of the built-in corpus definitions
func Builtin() []Definition {
	out := make([]Definition, len(builtin))
	for i, d := range builtin {
		out[i] = Definition{
			Name:      d.Name,
			Soundness: d.Soundness,
			Rules:     append([]Rule(nil), d.Rules...),
		}
	}
	return out
}
