// Package utm captures campaign parameters and maps campaigns to personas.
package utm

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	Source   = "utm_source"
	Medium   = "utm_medium"
	Campaign = "utm_campaign"
	Term     = "utm_term"
	Content  = "utm_content"
)

// Keys lists the captured parameters in canonical order.
var Keys = []string{Source, Medium, Campaign, Term, Content}

// NiliaContent is the utm_content value recorded for Nilia sign-ups.
const NiliaContent = "nilia"

// Params holds the non-empty UTM parameters of a landing.
type Params map[string]string

// Capture keeps the UTM keys of query that carry a value.
func Capture(query url.Values) Params {
	p := Params{}
	for _, k := range Keys {
		if v := strings.TrimSpace(query.Get(k)); v != "" {
			p[k] = v
		}
	}
	return p
}

// Sanitize drops unknown keys and empty values from raw client input.
func Sanitize(raw map[string]string) Params {
	p := Params{}
	for _, k := range Keys {
		if v := strings.TrimSpace(raw[k]); v != "" {
			p[k] = v
		}
	}
	return p
}

// Empty reports whether no parameter was captured.
func (p Params) Empty() bool { return len(p) == 0 }

// IsNilia reports whether the parameters mark a Nilia sign-up.
func (p Params) IsNilia() bool { return strings.EqualFold(p[Content], NiliaContent) }

// Mapping resolves campaign names to persona ids.
type Mapping struct {
	campaigns map[string]string
}

// DefaultMapping is used when no mapping file is configured.
func DefaultMapping() *Mapping {
	return NewMapping(map[string]string{
		"wellness":      "wellness-assistant",
		"mental-health": "wellness-assistant",
		"companion":     "companion",
		"friendship":    "companion",
		"study":         "learning-coach",
		"students":      "learning-coach",
		"productivity":  "personal-assistant",
	})
}

// NewMapping normalises campaign names to lowercase.
func NewMapping(campaigns map[string]string) *Mapping {
	return &Mapping{campaigns: lo.MapKeys(campaigns, func(_ string, k string) string {
		return normalize(k)
	})}
}

type mappingFile struct {
	Campaigns map[string]string `yaml:"campaigns"`
}

// LoadMapping reads a YAML file of the form `campaigns: {name: persona}`.
func LoadMapping(path string) (*Mapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read utm mapping: %w", err)
	}
	var f mappingFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse utm mapping: %w", err)
	}
	return NewMapping(f.Campaigns), nil
}

// PersonaFor returns the persona mapped to the campaign in p, if any.
func (m *Mapping) PersonaFor(p Params) (string, bool) {
	if m == nil {
		return "", false
	}
	c := normalize(p[Campaign])
	if c == "" {
		return "", false
	}
	id, ok := m.campaigns[c]
	return id, ok
}

// Validate checks that every mapped persona satisfies known.
func (m *Mapping) Validate(known func(id string) bool) error {
	unknown := lo.Uniq(lo.Filter(lo.Values(m.campaigns), func(id string, _ int) bool { return !known(id) }))
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("utm mapping references unknown personas: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
