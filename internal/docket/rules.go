package docket

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps a set of keywords to a document type. Rules are evaluated in
// order against the upper-cased entry text; the first keyword hit wins.
type Rule struct {
	Type     string   `yaml:"type"`
	Keywords []string `yaml:"keywords"`
}

// Classifier assigns a document type to docket entry text.
type Classifier struct {
	rules    []Rule
	fallback string
}

type rulesFile struct {
	Rules   []Rule `yaml:"rules"`
	Default string `yaml:"default"`
}

// DefaultRules is the built-in rule order. "CERTIFICATE OF SERVICE" sits
// before "MOTION" so a service certificate for a motion classifies as a
// Certificate, and "MOTION" sits before "ORDER" so a motion for an order
// classifies as a Motion.
func DefaultRules() []Rule {
	return []Rule{
		{Type: "Certificate", Keywords: []string{"CERTIFICATE OF SERVICE", "CERT OF SERVICE"}},
		{Type: "Certificate", Keywords: []string{"CERTIFICATE"}},
		{Type: "Motion", Keywords: []string{"MOTION"}},
		{Type: "Order", Keywords: []string{"ORDER"}},
		{Type: "Response", Keywords: []string{"RESPONSE", "OPPOSITION"}},
		{Type: "Reply", Keywords: []string{"REPLY"}},
		{Type: "Notice", Keywords: []string{"NOTICE"}},
		{Type: "Brief", Keywords: []string{"BRIEF", "MEMORANDUM"}},
		{Type: "Appeal", Keywords: []string{"APPEAL"}},
		{Type: "Petition", Keywords: []string{"PETITION"}},
		{Type: "Transcript", Keywords: []string{"TRANSCRIPT"}},
		{Type: "Judgment", Keywords: []string{"JUDGMENT"}},
		{Type: "Statement", Keywords: []string{"DOCKETING STATEMENT"}},
		{Type: "Appendix", Keywords: []string{"APPENDIX"}},
		{Type: "Exhibit", Keywords: []string{"EXHIBITS", "EXHIBIT"}},
	}
}

// DefaultType is assigned when no rule matches.
const DefaultType = "Filing"

// NewClassifier builds a classifier from an ordered rule list.
func NewClassifier(rules []Rule, fallback string) *Classifier {
	if fallback == "" {
		fallback = DefaultType
	}
	return &Classifier{rules: rules, fallback: fallback}
}

// DefaultClassifier returns a classifier with the built-in rules.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules(), DefaultType)
}

// LoadClassifier reads an ordered rule list from a YAML file. An empty path
// returns the default classifier.
func LoadClassifier(path string) (*Classifier, error) {
	if path == "" {
		return DefaultClassifier(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	return NewClassifier(rf.Rules, rf.Default), nil
}

// Classify returns the document type for a docket entry text.
func (c *Classifier) Classify(text string) string {
	upper := strings.ToUpper(text)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(upper, keyword) {
				return rule.Type
			}
		}
	}
	return c.fallback
}
