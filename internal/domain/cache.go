package domain

// ScanCache holds per-file scan results from earlier runs, keyed by
// "<hub>/<relative path>". It is only valid for the rule set it was built
// with.
type ScanCache struct {
	ProjectPath string                `json:"project_path"`
	RulesHash   string                `json:"rules_hash"`
	Files       map[string]CachedFile `json:"files"`
}

// CachedFile is a file's scan result stamped with the file's size and
// modification time at scan time.
type CachedFile struct {
	Size       int64       `json:"size"`
	ModTime    int64       `json:"mod_time"`
	Violations []Violation `json:"violations"`
}

// NewScanCache returns an empty cache for the rule set fingerprint.
func NewScanCache(projectPath, rulesHash string) *ScanCache {
	return &ScanCache{ProjectPath: projectPath, RulesHash: rulesHash, Files: make(map[string]CachedFile)}
}

func (c *ScanCache) IsInvalidated(rulesHash string) bool {
	return c.RulesHash != rulesHash
}

// CacheStore persists the scan cache between runs.
type CacheStore interface {
	Load(projectPath string) (*ScanCache, error)
	Save(cache *ScanCache) error
	Invalidate(projectPath string) error
}
