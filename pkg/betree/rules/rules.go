// Package rules loads named filter expressions from YAML or JSON files and
// compiles them into a set usable for concurrent matching.
//
// A rule file looks like:
//
//	rules:
//	  - name: big-remote
//	    expr: "remote == true & size > 1000"
//	  - name: scratch
//	    expr: "label contains tmp | label contains scratch"
package rules

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/randalmurphal/betree/pkg/betree/filter"
)

// ErrUnknownRule is returned when a named rule does not exist in a Set.
var ErrUnknownRule = errors.New("rules: unknown rule")

// Rule pairs a name with a filter expression.
type Rule struct {
	Name string `yaml:"name" json:"name"`
	Expr string `yaml:"expr" json:"expr"`
}

// RuleSet is the document shape of a rule file.
type RuleSet struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// Compile compiles every rule. Compilation fails on the first invalid
// expression, on an unnamed rule, and on duplicate names; the error names
// the offending rule.
func (rs RuleSet) Compile() (*Set, error) {
	set := &Set{filters: make(map[string]*filter.Filter, len(rs.Rules))}
	for _, rule := range rs.Rules {
		if err := set.Add(rule); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Set holds compiled rules for concurrent matching. Reads take a shared
// lock; Add and Remove take an exclusive one.
type Set struct {
	mu      sync.RWMutex
	filters map[string]*filter.Filter
}

// Add compiles one rule into the set. Replacing an existing name is an
// error; Remove it first.
func (s *Set) Add(rule Rule) error {
	if rule.Name == "" {
		return fmt.Errorf("rules: rule with expression %q has no name", rule.Expr)
	}
	f, err := filter.Compile(rule.Expr)
	if err != nil {
		return fmt.Errorf("rules: rule %q: %w", rule.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.filters[rule.Name]; exists {
		return fmt.Errorf("rules: duplicate rule name %q", rule.Name)
	}
	s.filters[rule.Name] = f
	return nil
}

// Remove deletes a rule by name. Removing an absent name is a no-op.
func (s *Set) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.filters, name)
}

// Get returns the compiled filter for a name.
func (s *Set) Get(name string) (*filter.Filter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.filters[name]
	return f, ok
}

// Names returns the rule names in sorted order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.filters))
	for name := range s.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.filters)
}

// Match evaluates one named rule against a record.
func (s *Set) Match(name string, record map[string]any) (bool, error) {
	f, ok := s.Get(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return f.Match(record)
}

// MatchAny returns the first rule, in name order, that matches the record.
// ok is false when no rule matches.
func (s *Set) MatchAny(record map[string]any) (name string, ok bool, err error) {
	for _, name := range s.Names() {
		f, exists := s.Get(name)
		if !exists {
			continue
		}
		matched, err := f.Match(record)
		if err != nil {
			return "", false, fmt.Errorf("rules: rule %q: %w", name, err)
		}
		if matched {
			return name, true, nil
		}
	}
	return "", false, nil
}
