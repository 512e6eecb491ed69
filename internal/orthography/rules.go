// Package orthography converts words from practical orthography into
// phonemic transcriptions using ordered regular-expression rules, then
// syllabifies the result with a second rule group.
package orthography

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/lexio"
)

// RuleType selects the group a rule belongs to.
type RuleType string

const (
	// RulePhon maps orthography to phonemes.
	RulePhon RuleType = "phon"
	// RuleSyl inserts syllable boundaries into a phonemic form.
	RuleSyl RuleType = "syl"
)

// Rule is one pattern → replacement rewrite.
type Rule struct {
	Type        RuleType `yaml:"type"`
	Pattern     string   `yaml:"original"`
	Replacement string   `yaml:"result"`
	// Source locates the rule for error messages, e.g. "rules.csv:4".
	Source string `yaml:"-"`
}

// RuleSet holds the rules of a file split by type, each in file order.
type RuleSet struct {
	Phon []Rule
	Syl  []Rule
	// Ignored counts rules whose type is neither phon nor syl.
	Ignored int
}

func (s *RuleSet) add(r Rule) {
	switch RuleType(strings.TrimSpace(string(r.Type))) {
	case RulePhon:
		s.Phon = append(s.Phon, r)
	case RuleSyl:
		s.Syl = append(s.Syl, r)
	default:
		s.Ignored++
	}
}

// LoadRules reads a rules file. Files ending in .yaml or .yml are YAML,
// everything else is CSV with type, original and result columns.
func LoadRules(path string) (RuleSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return RuleSet{}, fmt.Errorf("open rules: %w", err)
		}
		defer f.Close()
		return ParseRulesYAML(f, filepath.Base(path))
	default:
		t, err := lexio.ReadTable(path)
		if err != nil {
			return RuleSet{}, fmt.Errorf("read rules: %w", err)
		}
		return rulesFromTable(t, filepath.Base(path))
	}
}

func rulesFromTable(t lexio.Table, name string) (RuleSet, error) {
	typeCol, origCol, resCol := t.Column("type"), t.Column("original"), t.Column("result")

	var missing []domain.FieldError
	for _, c := range []struct {
		name string
		idx  int
	}{{"type", typeCol}, {"original", origCol}, {"result", resCol}} {
		if c.idx < 0 {
			missing = append(missing, domain.FieldError{Field: c.name, Message: name + " has no such column"})
		}
	}
	if len(missing) > 0 {
		return RuleSet{}, domain.NewValidationErrors(missing)
	}

	types, patterns, results := t.Values(typeCol), t.Values(origCol), t.Values(resCol)

	var set RuleSet
	for i := range t.Rows {
		set.add(Rule{
			Type:        RuleType(types[i]),
			Pattern:     patterns[i],
			Replacement: results[i],
			Source:      fmt.Sprintf("%s:%d", name, i+2), // header is line 1
		})
	}
	return set, nil
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// ParseRulesYAML reads rules from a document of the form
//
//	rules:
//	  - {type: phon, original: "rr", result: "r"}
func ParseRulesYAML(r io.Reader, name string) (RuleSet, error) {
	var doc rulesFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return RuleSet{}, fmt.Errorf("decode %s: %w", name, err)
	}

	var set RuleSet
	for i, rule := range doc.Rules {
		rule.Source = fmt.Sprintf("%s: rule %d", name, i+1)
		set.add(rule)
	}
	return set, nil
}
