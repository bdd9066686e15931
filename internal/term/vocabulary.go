package term

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"unicode"

	"github.com/conduit-lang/eggmath/internal/errors"
)

// Entry binds one canonical name to the op it denotes
type Entry struct {
	Name string
	Op   Op
}

// Vocabulary is the bijective table between canonical names and ops. Fixed
// operators and named constants share one namespace, since both appear as
// bare atoms in rule text.
type Vocabulary struct {
	byName map[string]Op
	byKey  map[string]string
	names  []string
}

// BuiltinEntries lists every fixed-name kind followed by every named constant
func BuiltinEntries() []Entry {
	entries := make([]Entry, 0, int(numKinds)+int(numFPConstants))
	for _, k := range Kinds() {
		entries = append(entries, Entry{Name: kindNames[k], Op: OpOf(k)})
	}
	for _, c := range FPConstants() {
		entries = append(entries, Entry{Name: fpConstantNames[c], Op: FP(c)})
	}
	return entries
}

// NewVocabulary assembles and validates a table. All problems are reported
// together as an errors.ErrorList; a vocabulary is never returned in a
// partially valid state.
func NewVocabulary(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		byName: make(map[string]Op, len(entries)),
		byKey:  make(map[string]string, len(entries)),
		names:  make([]string, 0, len(entries)),
	}

	var diags errors.ErrorList
	for _, e := range entries {
		if reason := invalidNameReason(e.Name); reason != "" {
			diags = append(diags, errors.NewInvalidName(e.Name, describeOp(e.Op), reason))
			continue
		}
		if e.Op.Kind == Constant || e.Op.Kind == Variable {
			diags = append(diags, errors.NewInvalidName(e.Name, describeOp(e.Op), "constants and variables are spelled by their payload"))
			continue
		}
		if prev, exists := v.byName[e.Name]; exists {
			diags = append(diags, errors.NewDuplicateName(e.Name, describeOp(prev), describeOp(e.Op)))
			continue
		}
		key := e.Op.Key()
		if prevName, exists := v.byKey[key]; exists {
			diags = append(diags, errors.NewDuplicateName(e.Name, describeOp(e.Op), "alias of '"+prevName+"'"))
			continue
		}
		v.byName[e.Name] = e.Op
		v.byKey[key] = e.Name
		v.names = append(v.names, e.Name)
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}

	sort.Strings(v.names)
	return v, nil
}

var defaultVocabulary, defaultVocabularyErr = NewVocabulary(BuiltinEntries())

// Default returns the validated built-in vocabulary
func Default() (*Vocabulary, error) {
	return defaultVocabulary, defaultVocabularyErr
}

// Lookup resolves a canonical name
func (v *Vocabulary) Lookup(name string) (Op, bool) {
	op, ok := v.byName[name]
	return op, ok
}

// Names returns all canonical names, sorted
func (v *Vocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Len returns the number of entries
func (v *Vocabulary) Len() int {
	return len(v.names)
}

func describeOp(op Op) string {
	switch op.Kind {
	case NamedConstant:
		return fmt.Sprintf("named constant %s", op.Symbol)
	case Constant, Variable:
		return op.Kind.String()
	}
	return fmt.Sprintf("operator %s", op.Kind)
}

// invalidNameReason returns why name cannot be used as an atom, or ""
func invalidNameReason(name string) string {
	if name == "" {
		return "name is empty"
	}
	if strings.HasPrefix(name, "?") {
		return "names starting with '?' are pattern variables"
	}
	for _, r := range name {
		if unicode.IsSpace(r) || r == '(' || r == ')' {
			return "names cannot contain whitespace or parentheses"
		}
	}
	if _, ok := new(big.Rat).SetString(name); ok {
		return "name parses as a rational literal"
	}
	return ""
}
