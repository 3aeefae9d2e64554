package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// LinePredicate reports how many non-overlapping occurrences of a pattern
// a single raw line contains.
type LinePredicate interface {
	MatchCount(line string) int
}

// RegexpPredicate matches lines against a compiled regular expression.
type RegexpPredicate struct {
	re *regexp.Regexp
}

// NewRegexpPredicate compiles expr into a predicate.
func NewRegexpPredicate(expr string) (RegexpPredicate, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return RegexpPredicate{}, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	return RegexpPredicate{re: re}, nil
}

func (p RegexpPredicate) MatchCount(line string) int {
	return len(p.re.FindAllStringIndex(line, -1))
}

// LiteralPredicate matches a fixed substring.
type LiteralPredicate string

func (p LiteralPredicate) MatchCount(line string) int {
	if p == "" {
		return 0
	}
	return strings.Count(line, string(p))
}

// Rule is a severity-tagged detection rule. Message is the remediation hint
// shown next to every violation the rule produces.
type Rule struct {
	ID        string        `json:"id"`
	Severity  Severity      `json:"severity"`
	Pattern   string        `json:"pattern"`
	Message   string        `json:"message"`
	Predicate LinePredicate `json:"-"`
}

// RuleSet is an immutable catalogue of rules grouped by severity.
type RuleSet struct {
	buckets map[Severity][]Rule
}

// NewRuleSet groups rules by severity, keeping declaration order inside each
// bucket. Rules with an unknown severity or no predicate are rejected.
func NewRuleSet(rules ...Rule) (RuleSet, error) {
	rs := RuleSet{buckets: make(map[Severity][]Rule, len(Severities))}
	for _, r := range rules {
		if _, ok := ParseSeverity(string(r.Severity)); !ok {
			return RuleSet{}, fmt.Errorf("rule %q: unknown severity %q", r.ID, r.Severity)
		}
		if r.Predicate == nil {
			return RuleSet{}, fmt.Errorf("rule %q: missing predicate", r.ID)
		}
		rs.buckets[r.Severity] = append(rs.buckets[r.Severity], r)
	}
	return rs, nil
}

// MustRuleSet is NewRuleSet for catalogues known to be valid.
func MustRuleSet(rules ...Rule) RuleSet {
	rs, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

// BySeverity returns a copy of the rules in one bucket.
func (rs RuleSet) BySeverity(sev Severity) []Rule {
	return append([]Rule(nil), rs.buckets[sev]...)
}

// Rules returns every rule, critical bucket first.
func (rs RuleSet) Rules() []Rule {
	var all []Rule
	for _, sev := range Severities {
		all = append(all, rs.buckets[sev]...)
	}
	return all
}

// Len returns the number of rules in the set.
func (rs RuleSet) Len() int {
	n := 0
	for _, b := range rs.buckets {
		n += len(b)
	}
	return n
}

// With returns a new set holding rs's rules followed by extra.
func (rs RuleSet) With(extra ...Rule) (RuleSet, error) {
	return NewRuleSet(append(rs.Rules(), extra...)...)
}

func regexpRule(id string, sev Severity, expr, message string) Rule {
	p, err := NewRegexpPredicate(expr)
	if err != nil {
		panic(err)
	}
	return Rule{ID: id, Severity: sev, Pattern: expr, Message: message, Predicate: p}
}

// DefaultRuleSet returns the built-in catalogue of ad-hoc infrastructure
// patterns and the shared capability that replaces each one.
func DefaultRuleSet() RuleSet {
	return MustRuleSet(
		regexpRule("axios-instance", SeverityCritical, `axios\.create\(`,
			"Use @tamyla/shared/api (ApiClient) instead of custom axios instances"),
		regexpRule("xml-http-request", SeverityCritical, `XMLHttpRequest`,
			"Use @tamyla/shared/api (ApiClient) instead of XMLHttpRequest"),
		regexpRule("event-target", SeverityCritical, `new EventTarget\(\)`,
			"Use @tamyla/shared/events (EventBus) instead of custom event systems"),
		regexpRule("event-manager", SeverityCritical, `class\s+\w*EventManager`,
			"Use @tamyla/shared/events (EventBus) instead of custom event managers"),

		regexpRule("local-storage", SeverityHigh, `localStorage\.(getItem|setItem|removeItem)`,
			"Use @tamyla/shared/auth (AuthService) for storage operations"),
		regexpRule("session-storage", SeverityHigh, `sessionStorage\.(getItem|setItem|removeItem)`,
			"Use @tamyla/shared/auth (AuthService) for storage operations"),
		regexpRule("raw-fetch", SeverityHigh, `fetch\s*\(`,
			"Use @tamyla/shared/api (ApiClient) methods instead of raw fetch()"),
		regexpRule("abort-controller", SeverityHigh, `new AbortController\(\)`,
			"Use @tamyla/shared/api (ApiClient) built-in cancellation"),

		regexpRule("console-logging", SeverityMedium, `console\.(log|info|warn|error|debug)`,
			"Use @tamyla/shared/utils (Logger) instead of console.*"),

		regexpRule("inline-catch", SeverityLow, `catch\s*\(\s*error?\s*\)\s*\{[^}]*\}`,
			"Use @tamyla/shared/utils (ErrorHandler) for consistent error handling"),
		regexpRule("raw-error", SeverityLow, `throw\s+new\s+Error\(`,
			"Consider using @tamyla/shared/utils (ErrorHandler) for error creation"),
	)
}

// Fingerprint identifies the rule set's content. Scan caches built with a
// different fingerprint are discarded.
func (rs RuleSet) Fingerprint() string {
	h := sha256.New()
	for _, r := range rs.Rules() {
		fmt.Fprintf(h, "%s\x00%s\x00%T\x00%s\x00%s\n", r.ID, r.Severity, r.Predicate, r.Pattern, r.Message)
	}
	return hex.EncodeToString(h.Sum(nil))
}
