package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the YAML layout of a user rule file:
//
//	groups:
//	  - name: doubling
//	    soundness: fp-safe
//	    rules:
//	      - name: add-self
//	        lhs: (+ ?a ?a)
//	        rhs: (* 2 ?a)
type ruleFile struct {
	Groups []Definition `yaml:"groups"`
}

// ParseFile decodes rule definitions from YAML. A group without a
// soundness class is treated as Exact. Patterns are not checked here;
// NewCorpus does that.
func ParseFile(data []byte) ([]Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f ruleFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	for i := range f.Groups {
		g := &f.Groups[i]
		if g.Name == "" {
			return nil, fmt.Errorf("group %d has no name", i+1)
		}
		if g.Soundness == "" {
			g.Soundness = Exact
			continue
		}
		if _, err := ParseSoundness(string(g.Soundness)); err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return f.Groups, nil
}

// LoadFiles reads and concatenates rule files in order
func LoadFiles(paths ...string) ([]Definition, error) {
	var defs []Definition
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rule file: %w", err)
		}
		parsed, err := ParseFile(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defs = append(defs, parsed...)
	}
	return defs, nil
}
