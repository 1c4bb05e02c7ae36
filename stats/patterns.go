package stats

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PatternConfig holds the raw regular expressions of one log format.
// Each expression must have one capture group holding a decimal integer.
type PatternConfig struct {
	Threads string `yaml:"threads,omitempty"`
	Insert  string `yaml:"insert"`
	Lookup  string `yaml:"lookup"`
	Remove  string `yaml:"remove"`
	Action  string `yaml:"action"`
}

// PatternFile is the YAML layout accepted by LoadPatternFile.
type PatternFile struct {
	Flat *PatternConfig `yaml:"flat,omitempty"`
	Tree *PatternConfig `yaml:"tree,omitempty"`
}

// Default patterns of the two producer formats.
var (
	DefaultFlatPatterns = PatternConfig{
		Threads: `(\d+) threads`,
		Insert:  `insert in (\d+)`,
		Lookup:  `lookup in (\d+)`,
		Remove:  `remove in (\d+)`,
		Action:  `action in (\d+)`,
	}
	DefaultTreePatterns = PatternConfig{
		Insert: `Insert took (\d+)`,
		Lookup: `Lookup took (\d+)`,
		Remove: `Remove took (\d+)`,
		Action: `Action took (\d+)`,
	}
)

// Patterns is a compiled PatternConfig.
type Patterns struct {
	threads *regexp.Regexp
	ops     map[Op]*regexp.Regexp
}

// Compile validates and compiles every expression.
func (c PatternConfig) Compile() (*Patterns, error) {
	p := &Patterns{ops: make(map[Op]*regexp.Regexp, len(Ops))}
	if c.Threads != "" {
		re, err := compileOne("threads", c.Threads)
		if err != nil {
			return nil, err
		}
		p.threads = re
	}
	exprs := [...]string{OpInsert: c.Insert, OpLookup: c.Lookup, OpRemove: c.Remove, OpAction: c.Action}
	for _, op := range Ops {
		re, err := compileOne(op.String(), exprs[op])
		if err != nil {
			return nil, err
		}
		p.ops[op] = re
	}
	return p, nil
}

func compileOne(name, expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, fmt.Errorf("pattern %s: empty expression", name)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", name, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("pattern %s: %q has no capture group", name, expr)
	}
	return re, nil
}

// MustCompile is Compile for the built-in defaults.
func (c PatternConfig) MustCompile() *Patterns {
	p, err := c.Compile()
	if err != nil {
		panic(err)
	}
	return p
}

// LoadPatternFile reads pattern overrides from YAML.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadPatternFile(path string) (*PatternFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file: %w", err)
	}
	var pf PatternFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return nil, fmt.Errorf("parsing pattern file: %w", err)
	}
	return &pf, nil
}

// matchThreads reports the thread count of a header line, if it is one.
func (p *Patterns) matchThreads(text string) (int, bool) {
	if p.threads == nil {
		return 0, false
	}
	m := p.threads.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// matchOps returns one sample per operation pattern that matches text.
// Patterns are independent: a text can produce several samples.
func (p *Patterns) matchOps(text string, threads int) []Sample {
	var out []Sample
	for _, op := range Ops {
		m := p.ops[op].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			continue
		}
		out = append(out, Sample{Threads: threads, Op: op, Latency: float64(v)})
	}
	return out
}
