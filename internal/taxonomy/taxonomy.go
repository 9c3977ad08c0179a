// Package taxonomy holds the read-only keyword, vocabulary and pattern tables that drive
// competency matching, stage classification, statement analysis and spinning.
//
// A Taxonomy is loaded once (from the embedded default.yaml or an override file) and
// then shared by every component. Nothing in this package mutates a loaded Taxonomy.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/jobfit/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Area is a named competency area with a base weight and keyword set
type Area struct {
	Name       string   `yaml:"name" json:"name"`
	BaseWeight float64  `yaml:"base_weight" json:"base_weight"`
	Keywords   []string `yaml:"keywords" json:"keywords"`
}

// Interest configures the advisory interest level
type Interest struct {
	Baseline int      `yaml:"baseline"`
	Signals  []string `yaml:"signals"`
}

// Example is a before/after spinning sample
type Example struct {
	Before string `yaml:"before" json:"before"`
	After  string `yaml:"after" json:"after"`
}

// StageProfile is the vocabulary and writing guidance for one stage
type StageProfile struct {
	Vocabulary  []string  `yaml:"vocabulary"`
	Overrides   []string  `yaml:"overrides"`
	Guidance    string    `yaml:"guidance"`
	ActionVerbs []string  `yaml:"action_verbs"`
	Keywords    []string  `yaml:"keywords"`
	Modifiers   []string  `yaml:"modifiers"`
	Outcomes    []string  `yaml:"outcomes"`
	Explanation string    `yaml:"explanation"`
	Examples    []Example `yaml:"examples"`
}

// LengthBand is the allowed character range for an assembled statement
type LengthBand struct {
	Min   int `yaml:"min_chars"`
	Max   int `yaml:"max_chars"`
	Ideal int `yaml:"ideal_chars"`
}

// NamedPattern is a regular expression with a label
type NamedPattern struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`

	re *regexp.Regexp
}

// Regexp returns the compiled pattern
func (p NamedPattern) Regexp() *regexp.Regexp {
	return p.re
}

// VerbSwap maps a leading weak phrase to a stronger verb
type VerbSwap struct {
	Weak   string `yaml:"weak"`
	Strong string `yaml:"strong"`
}

// Transformation is a term substitution applied by the spinning engine
type Transformation struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// TextSignals are the plain-text indicators for framework parts of a free-form statement
type TextSignals struct {
	Context []string `yaml:"context"`
	Method  []string `yaml:"method"`
	Impact  []string `yaml:"impact"`
	Outcome []string `yaml:"outcome"`
}

// SkillTables drive the skills intelligence section of an assessment
type SkillTables struct {
	Tier1   []string            `yaml:"tier_1"`
	Tier2   map[string][]string `yaml:"tier_2"`
	Domains map[string][]string `yaml:"domains"`
}

// Taxonomy is the full set of static tables
type Taxonomy struct {
	Areas            []Area                       `yaml:"areas"`
	Interest         Interest                     `yaml:"interest"`
	StagePriority    []types.Stage                `yaml:"stage_priority"`
	Stages           map[types.Stage]StageProfile `yaml:"stages"`
	OverrideBonus    int                          `yaml:"override_bonus"`
	Bullets          LengthBand                   `yaml:"bullets"`
	MetricPatterns   []NamedPattern               `yaml:"metric_patterns"`
	MetricTypes      []NamedPattern               `yaml:"metric_types"`
	WeakVerbs        []string                     `yaml:"weak_verbs"`
	GenericPhrases   []string                     `yaml:"generic_phrases"`
	VerbSwaps        []VerbSwap                   `yaml:"verb_swaps"`
	StrongVerbs      []string                     `yaml:"strong_verbs"`
	VerbAlternatives map[string][]string          `yaml:"verb_alternatives"`
	Transformations  []Transformation             `yaml:"transformations"`
	TextSignals      TextSignals                  `yaml:"text_signals"`
	SoftSkills       []string                     `yaml:"soft_skills"`
	Skills           SkillTables                  `yaml:"skills"`

	keywordRes map[string]*regexp.Regexp
	signalRes  map[string][]*regexp.Regexp
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
	defaultErr  error
)

// Default returns the embedded taxonomy. It is parsed once and shared.
func Default() (*Taxonomy, error) {
	defaultOnce.Do(func() {
		defaultTax, defaultErr = Parse(defaultYAML)
	})
	return defaultTax, defaultErr
}

// MustDefault returns the embedded taxonomy, panicking if it cannot be parsed.
func MustDefault() *Taxonomy {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load default taxonomy: %v", err))
	}
	return t
}

// LoadFile reads a taxonomy override from a YAML file
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read taxonomy file", Cause: err}
	}
	t, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse taxonomy file", Cause: err}
	}
	return t, nil
}

// Load returns the override taxonomy at path, or the embedded default when path is empty
func Load(path string) (*Taxonomy, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes, validates and compiles a taxonomy document
func Parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomy: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := t.compile(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the structural invariants of the tables
func (t *Taxonomy) Validate() error {
	if len(t.Areas) == 0 {
		return &ValidationError{Field: "areas", Message: "at least one competency area is required"}
	}
	seen := make(map[string]bool, len(t.Areas))
	for i, a := range t.Areas {
		if strings.TrimSpace(a.Name) == "" {
			return &ValidationError{Field: fmt.Sprintf("areas[%d].name", i), Message: "name is required"}
		}
		if seen[a.Name] {
			return &ValidationError{Field: fmt.Sprintf("areas[%d].name", i), Message: fmt.Sprintf("duplicate area %q", a.Name)}
		}
		seen[a.Name] = true
		if a.BaseWeight < 0 || a.BaseWeight > 1 {
			return &ValidationError{Field: fmt.Sprintf("areas[%d].base_weight", i), Message: "must be in [0,1]"}
		}
		if len(a.Keywords) == 0 {
			return &ValidationError{Field: fmt.Sprintf("areas[%d].keywords", i), Message: "at least one keyword is required"}
		}
	}
	for _, s := range types.Stages {
		if _, ok := t.Stages[s]; !ok {
			return &ValidationError{Field: "stages", Message: fmt.Sprintf("missing stage %q", s)}
		}
	}
	if len(t.StagePriority) != len(types.Stages) {
		return &ValidationError{Field: "stage_priority", Message: "must list every stage exactly once"}
	}
	if t.Bullets.Min <= 0 || t.Bullets.Max < t.Bullets.Min {
		return &ValidationError{Field: "bullets", Message: "invalid length band"}
	}
	if len(t.MetricPatterns) == 0 {
		return &ValidationError{Field: "metric_patterns", Message: "at least one pattern is required"}
	}
	return nil
}

func (t *Taxonomy) compile() error {
	for i := range t.MetricPatterns {
		re, err := regexp.Compile(t.MetricPatterns[i].Pattern)
		if err != nil {
			return &ValidationError{Field: "metric_patterns." + t.MetricPatterns[i].Name, Message: err.Error()}
		}
		t.MetricPatterns[i].re = re
	}
	for i := range t.MetricTypes {
		re, err := regexp.Compile(t.MetricTypes[i].Pattern)
		if err != nil {
			return &ValidationError{Field: "metric_types." + t.MetricTypes[i].Name, Message: err.Error()}
		}
		t.MetricTypes[i].re = re
	}

	t.keywordRes = make(map[string]*regexp.Regexp)
	add := func(words []string) {
		for _, w := range words {
			key := strings.ToLower(strings.TrimSpace(w))
			if key == "" || t.keywordRes[key] != nil {
				continue
			}
			t.keywordRes[key] = regexp.MustCompile(`(?i)` + boundary(key))
		}
	}
	for _, a := range t.Areas {
		add(a.Keywords)
	}
	for _, p := range t.Stages {
		add(p.Vocabulary)
		add(p.Overrides)
	}
	add(t.Interest.Signals)
	add(t.GenericPhrases)
	add(t.Skills.Tier1)
	for tool := range t.Skills.Tier2 {
		add([]string{tool})
	}
	for _, words := range t.Skills.Domains {
		add(words)
	}
	for _, tr := range t.Transformations {
		add([]string{tr.From})
	}

	t.signalRes = make(map[string][]*regexp.Regexp)
	for name, patterns := range map[string][]string{
		"context": t.TextSignals.Context,
		"method":  t.TextSignals.Method,
		"impact":  t.TextSignals.Impact,
		"outcome": t.TextSignals.Outcome,
	} {
		for _, p := range patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				return &ValidationError{Field: "text_signals." + name, Message: err.Error()}
			}
			t.signalRes[name] = append(t.signalRes[name], re)
		}
	}
	return nil
}

// boundary wraps a literal in word boundaries where the literal starts/ends with a word character.
func boundary(literal string) string {
	pattern := regexp.QuoteMeta(literal)
	if isWordByte(literal[0]) {
		pattern = `\b` + pattern
	}
	if isWordByte(literal[len(literal)-1]) {
		pattern += `\b`
	}
	return pattern
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// KeywordPattern returns the case-insensitive word-boundary pattern for a keyword.
// Keywords not known to the taxonomy are compiled on demand.
func (t *Taxonomy) KeywordPattern(keyword string) *regexp.Regexp {
	key := strings.ToLower(strings.TrimSpace(keyword))
	if re, ok := t.keywordRes[key]; ok {
		return re
	}
	if key == "" {
		return regexp.MustCompile(`\b\B`)
	}
	return regexp.MustCompile(`(?i)` + boundary(key))
}

// CountKeyword returns how many times keyword occurs in text
func (t *Taxonomy) CountKeyword(text, keyword string) int {
	return len(t.KeywordPattern(keyword).FindAllStringIndex(text, -1))
}

// ContainsKeyword reports whether keyword occurs in text
func (t *Taxonomy) ContainsKeyword(text, keyword string) bool {
	return t.KeywordPattern(keyword).MatchString(text)
}

// SignalPatterns returns the compiled plain-text signals for a framework part
// ("context", "method", "impact" or "outcome").
func (t *Taxonomy) SignalPatterns(part string) []*regexp.Regexp {
	return t.signalRes[part]
}

// Area returns the named area
func (t *Taxonomy) Area(name string) (Area, bool) {
	for _, a := range t.Areas {
		if a.Name == name {
			return a, true
		}
	}
	return Area{}, false
}

// AreaNames returns the area names in taxonomy order
func (t *Taxonomy) AreaNames() []string {
	names := make([]string, len(t.Areas))
	for i, a := range t.Areas {
		names[i] = a.Name
	}
	return names
}

// AreaIndex returns the position of the named area, or len(Areas) when unknown
func (t *Taxonomy) AreaIndex(name string) int {
	for i, a := range t.Areas {
		if a.Name == name {
			return i
		}
	}
	return len(t.Areas)
}

// Stage returns the profile for a stage
func (t *Taxonomy) Stage(s types.Stage) StageProfile {
	return t.Stages[s]
}

// StageRank returns the tie-break rank of a stage (lower wins)
func (t *Taxonomy) StageRank(s types.Stage) int {
	for i, p := range t.StagePriority {
		if p == s {
			return i
		}
	}
	return len(t.StagePriority)
}

// Alternatives returns the synonym list for a verb, if any
func (t *Taxonomy) Alternatives(verb string) []string {
	return t.VerbAlternatives[verb]
}

// SortedVerbSwaps returns the verb swaps ordered longest phrase first
func (t *Taxonomy) SortedVerbSwaps() []VerbSwap {
	swaps := append([]VerbSwap(nil), t.VerbSwaps...)
	sort.SliceStable(swaps, func(i, j int) bool {
		return len(swaps[i].Weak) > len(swaps[j].Weak)
	})
	return swaps
}
