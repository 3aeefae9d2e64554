package domain_test

import (
	"testing"

	"github.com/openkraft/hubguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRuleSet_EveryBucketPopulated(t *testing.T) {
	rs := domain.DefaultRuleSet()
	for _, sev := range domain.Severities {
		assert.NotEmpty(t, rs.BySeverity(sev), "bucket %s", sev)
	}
	assert.Equal(t, 11, rs.Len())
}

func TestDefaultRuleSet_EveryRuleNamesItsReplacement(t *testing.T) {
	ids := map[string]bool{}
	for _, r := range domain.DefaultRuleSet().Rules() {
		assert.Contains(t, r.Message, "@tamyla/shared/", "rule %s", r.ID)
		assert.False(t, ids[r.ID], "duplicate id %s", r.ID)
		ids[r.ID] = true
	}
}

func TestDefaultRuleSet_Matches(t *testing.T) {
	rs := domain.DefaultRuleSet()
	cases := []struct {
		sev  domain.Severity
		line string
	}{
		{domain.SeverityCritical, "const http = axios.create({ baseURL })"},
		{domain.SeverityCritical, "const xhr = new XMLHttpRequest();"},
		{domain.SeverityCritical, "const bus = new EventTarget();"},
		{domain.SeverityCritical, "class CampaignEventManager {"},
		{domain.SeverityHigh, "localStorage.setItem('k', v)"},
		{domain.SeverityHigh, "sessionStorage.removeItem('k')"},
		{domain.SeverityHigh, "await fetch ('/api')"},
		{domain.SeverityHigh, "const ctl = new AbortController();"},
		{domain.SeverityMedium, "console.warn('x')"},
		{domain.SeverityLow, "} catch (error) { }"},
		{domain.SeverityLow, "throw new Error('boom')"},
	}
	for _, c := range cases {
		hits := 0
		for _, r := range rs.BySeverity(c.sev) {
			hits += r.Predicate.MatchCount(c.line)
		}
		assert.Equal(t, 1, hits, "%s: %q", c.sev, c.line)
	}
}

func TestRuleSet_RulesReturnsCopy(t *testing.T) {
	rs := domain.DefaultRuleSet()
	rules := rs.Rules()
	rules[0].Message = "mutated"
	assert.NotEqual(t, "mutated", rs.Rules()[0].Message)

	bucket := rs.BySeverity(domain.SeverityHigh)
	bucket[0].ID = "mutated"
	assert.NotEqual(t, "mutated", rs.BySeverity(domain.SeverityHigh)[0].ID)
}

func TestRuleSet_WithAppendsToBucket(t *testing.T) {
	base := domain.DefaultRuleSet()
	extended, err := base.With(domain.Rule{
		ID: "jquery", Severity: domain.SeverityMedium, Message: "m",
		Predicate: domain.LiteralPredicate("$.ajax("),
	})
	require.NoError(t, err)

	medium := extended.BySeverity(domain.SeverityMedium)
	assert.Equal(t, "jquery", medium[len(medium)-1].ID)
	assert.Equal(t, base.Len()+1, extended.Len())
}

func TestNewRuleSet_Rejects(t *testing.T) {
	_, err := domain.NewRuleSet(domain.Rule{ID: "x", Severity: "urgent", Predicate: domain.LiteralPredicate("x")})
	assert.Error(t, err)

	_, err = domain.NewRuleSet(domain.Rule{ID: "x", Severity: domain.SeverityLow})
	assert.Error(t, err)
}

func TestPredicates_CountNonOverlapping(t *testing.T) {
	re, err := domain.NewRegexpPredicate(`aa`)
	require.NoError(t, err)
	assert.Equal(t, 2, re.MatchCount("aaaaa"))
	assert.Equal(t, 2, domain.LiteralPredicate("aa").MatchCount("aaaaa"))
	assert.Equal(t, 0, domain.LiteralPredicate("").MatchCount("abc"))

	_, err = domain.NewRegexpPredicate(`fetch(`)
	assert.Error(t, err)
}
