// Package heuristic scores page credibility without network or LLM calls:
// topic detection by weighted keywords, claim extraction by factual-indicator
// patterns, per-claim scoring against trusted-source lists, and a weighted
// aggregate. Everything is deterministic given the same text and domain.
package heuristic

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claimlens/claimlens/internal/logger"
)

// CategoryProfile holds one topic's detection keywords, trusted domains, and
// scoring weight
type CategoryProfile struct {
	Weight            float64  `yaml:"weight"`
	PrimaryKeywords   []string `yaml:"primary_keywords"`
	SecondaryKeywords []string `yaml:"secondary_keywords"`
	TrustedDomains    []string `yaml:"trusted_domains"`
}

// SourceTable maps category names to their profiles
type SourceTable map[string]CategoryProfile

// GeneralCategory is the fallback when no topic scores above threshold
const GeneralCategory = "general"

// LoadSourceTable reads a category table from a YAML file. An empty path
// returns the builtin table; an unreadable, unparseable, or empty file falls
// back to the builtin table with a warning.
func LoadSourceTable(path string) SourceTable {
	if path == "" {
		return BuiltinSourceTable()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Warnf("source table %s unreadable, using builtin: %v", path, err)
		return BuiltinSourceTable()
	}

	var table SourceTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		logger.Log.Warnf("source table %s invalid, using builtin: %v", path, err)
		return BuiltinSourceTable()
	}
	if len(table) == 0 {
		logger.Log.Warnf("source table %s defines no categories, using builtin", path)
		return BuiltinSourceTable()
	}

	if _, ok := table[GeneralCategory]; !ok {
		table[GeneralCategory] = BuiltinSourceTable()[GeneralCategory]
	}

	return table
}

// Profile returns the category's profile, falling back to general
func (t SourceTable) Profile(category string) CategoryProfile {
	if p, ok := t[category]; ok {
		return p
	}
	return t[GeneralCategory]
}

// DomainTrustedAnywhere reports whether the domain appears in any category's
// trusted list
func (t SourceTable) DomainTrustedAnywhere(domain string) bool {
	for _, profile := range t {
		if domainMatchesAny(domain, profile.TrustedDomains) {
			return true
		}
	}
	return false
}

// domainMatchesAny checks exact, then suffix, then substring matches, in
// that precedence
func domainMatchesAny(domain string, trusted []string) bool {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return false
	}
	for _, t := range trusted {
		if domain == t {
			return true
		}
	}
	for _, t := range trusted {
		if strings.HasSuffix(domain, "."+t) {
			return true
		}
	}
	for _, t := range trusted {
		if strings.Contains(domain, t) {
			return true
		}
	}
	return false
}

// BuiltinSourceTable is the fallback table used when no YAML file is
// configured
func BuiltinSourceTable() SourceTable {
	return SourceTable{
		"health": {
			Weight:            1.0,
			PrimaryKeywords:   []string{"vaccine", "disease", "treatment", "clinical", "patients", "symptoms", "diagnosis"},
			SecondaryKeywords: []string{"health", "medical", "doctor", "hospital", "drug", "therapy"},
			TrustedDomains:    []string{"who.int", "cdc.gov", "nih.gov", "nejm.org", "thelancet.com", "mayoclinic.org"},
		},
		"science": {
			Weight:            1.0,
			PrimaryKeywords:   []string{"study", "researchers", "experiment", "peer-reviewed", "hypothesis", "laboratory"},
			SecondaryKeywords: []string{"science", "scientific", "research", "data", "evidence", "journal"},
			TrustedDomains:    []string{"nature.com", "science.org", "pnas.org", "arxiv.org", "nasa.gov"},
		},
		"politics": {
			Weight:            0.8,
			PrimaryKeywords:   []string{"election", "parliament", "congress", "legislation", "president", "minister"},
			SecondaryKeywords: []string{"government", "policy", "political", "vote", "senate", "campaign"},
			TrustedDomains:    []string{"reuters.com", "apnews.com", "bbc.com", "gov.uk", "congress.gov"},
		},
		"finance": {
			Weight:            0.9,
			PrimaryKeywords:   []string{"earnings", "revenue", "inflation", "interest rates", "stock market", "quarterly"},
			SecondaryKeywords: []string{"economy", "market", "investors", "bank", "financial", "trading"},
			TrustedDomains:    []string{"bloomberg.com", "ft.com", "wsj.com", "reuters.com", "economist.com"},
		},
		"technology": {
			Weight:            0.9,
			PrimaryKeywords:   []string{"software", "algorithm", "artificial intelligence", "startup", "cybersecurity", "processor"},
			SecondaryKeywords: []string{"technology", "tech", "computer", "internet", "digital", "app"},
			TrustedDomains:    []string{"arstechnica.com", "wired.com", "ieee.org", "acm.org", "theverge.com"},
		},
		GeneralCategory: {
			Weight:            0.7,
			PrimaryKeywords:   nil,
			SecondaryKeywords: nil,
			TrustedDomains:    []string{"reuters.com", "apnews.com", "bbc.com", "npr.org"},
		},
	}
}
