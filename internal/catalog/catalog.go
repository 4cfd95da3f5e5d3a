// Package catalog holds the read-only symptom table used by /analyze.
//
// A Catalog is built once at startup and shared by all requests; nothing
// mutates it after New returns, so it is safe for concurrent use.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Food advice is always available in these languages.
const (
	LangEnglish = "English"
	LangHindi   = "Hindi"
)

//go:embed catalog.yaml
var builtin []byte

// SymptomRecord is the canned advice for one symptom.
type SymptomRecord struct {
	Name           string            `yaml:"name" json:"name"`
	Observation    string            `yaml:"observation" json:"observation"`
	Recommendation string            `yaml:"recommendation" json:"recommendation"`
	Food           map[string]string `yaml:"food" json:"food"`
	Remedies       []string          `yaml:"remedies,omitempty" json:"remedies,omitempty"`
}

type file struct {
	Symptoms []SymptomRecord `yaml:"symptoms"`
}

// Catalog maps symptom names to their records, keeping definition order.
type Catalog struct {
	records []SymptomRecord
	index   map[string]int
}

// New validates records and builds a catalog that keeps their order.
func New(records []SymptomRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, errors.New("catalog: no symptoms defined")
	}

	c := &Catalog{
		records: make([]SymptomRecord, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for i, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("catalog: record %d has no name", i)
		}
		if _, dup := c.index[rec.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate symptom %q", rec.Name)
		}
		for _, lang := range []string{LangEnglish, LangHindi} {
			if _, ok := rec.Food[lang]; !ok {
				return nil, fmt.Errorf("catalog: symptom %q has no %s food advice", rec.Name, lang)
			}
		}
		c.records[i] = copyRecord(rec)
		c.index[rec.Name] = i
	}
	return c, nil
}

// Parse reads a YAML document of the form `symptoms: [...]`.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	return New(f.Symptoms)
}

// Load parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// LookupMany resolves keys in order. Unknown keys are skipped; repeated keys
// are repeated in the output. The three slices always have equal length and
// are never nil.
func (c *Catalog) LookupMany(keys []string) (observations, recommendations []string, food []map[string]string) {
	observations = make([]string, 0, len(keys))
	recommendations = make([]string, 0, len(keys))
	food = make([]map[string]string, 0, len(keys))

	for _, key := range keys {
		i, ok := c.index[key]
		if !ok {
			continue
		}
		rec := c.records[i]
		observations = append(observations, rec.Observation)
		recommendations = append(recommendations, rec.Recommendation)
		food = append(food, copyFood(rec.Food))
	}
	return observations, recommendations, food
}

// Lookup returns a copy of the record for key.
func (c *Catalog) Lookup(key string) (SymptomRecord, bool) {
	i, ok := c.index[key]
	if !ok {
		return SymptomRecord{}, false
	}
	return copyRecord(c.records[i]), true
}

// ListKeys returns every symptom name in definition order.
func (c *Catalog) ListKeys() []string {
	keys := make([]string, len(c.records))
	for i, rec := range c.records {
		keys[i] = rec.Name
	}
	return keys
}

// Len returns the number of symptoms.
func (c *Catalog) Len() int { return len(c.records) }

// Callers get their own maps and slices so the catalog stays immutable.
func copyRecord(rec SymptomRecord) SymptomRecord {
	rec.Food = copyFood(rec.Food)
	if rec.Remedies != nil {
		rec.Remedies = append([]string(nil), rec.Remedies...)
	}
	return rec
}

func copyFood(food map[string]string) map[string]string {
	out := make(map[string]string, len(food))
	for k, v := range food {
		out[k] = v
	}
	return out
}
