package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/openkraft/hubguard/internal/domain"
)

// LineScanner implements domain.FileScanner over raw text lines.
type LineScanner struct {
	rules domain.RuleSet
}

// NewLineScanner returns a scanner applying rules.
func NewLineScanner(rules domain.RuleSet) *LineScanner {
	return &LineScanner{rules: rules}
}

// ScanFile reads one hub file and returns a violation per rule occurrence.
// Matching runs on the raw line; Code carries the trimmed text.
func (s *LineScanner) ScanFile(hub domain.Hub, relPath string) ([]domain.Violation, error) {
	data, err := os.ReadFile(filepath.Join(hub.Path, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, err
	}
	return s.ScanText(hub.Name, relPath, string(data)), nil
}

// ScanText applies the rules to content already in memory.
func (s *LineScanner) ScanText(hubName, relPath, content string) []domain.Violation {
	lines := strings.Split(content, "\n")
	var out []domain.Violation
	for _, sev := range domain.Severities {
		for _, rule := range s.rules.BySeverity(sev) {
			for i, line := range lines {
				n := rule.Predicate.MatchCount(strings.TrimSuffix(line, "\r"))
				for range n {
					out = append(out, domain.Violation{
						Hub:      hubName,
						File:     relPath,
						Line:     i + 1,
						Code:     strings.TrimSpace(line),
						Message:  rule.Message,
						Severity: sev,
						RuleID:   rule.ID,
					})
				}
			}
		}
	}
	return out
}
