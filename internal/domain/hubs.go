package domain

import (
	"path"
	"sort"
	"strings"
)

// IsHubName reports whether a directory name follows the hub convention.
func IsHubName(name, suffix string) bool {
	return len(name) > len(suffix) && strings.HasSuffix(name, suffix)
}

// TouchedHubs maps changed file paths to the sorted set of hubs they belong
// to. A path touches a hub when its first component under packagesDir is a
// hub name. Paths are slash-separated and relative to the project root.
func TouchedHubs(paths []string, packagesDir, suffix string) []string {
	prefix := strings.Trim(path.Clean(strings.ReplaceAll(packagesDir, "\\", "/")), "/") + "/"
	seen := make(map[string]bool)
	for _, p := range paths {
		p = strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "./")
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok {
			continue
		}
		name, _, nested := strings.Cut(rest, "/")
		if !nested || !IsHubName(name, suffix) {
			continue
		}
		seen[name] = true
	}
	hubs := make([]string, 0, len(seen))
	for h := range seen {
		hubs = append(hubs, h)
	}
	sort.Strings(hubs)
	return hubs
}

// HubBaseName turns "content-hub" into "Content" and "user-profile-hub"
// into "UserProfile".
func HubBaseName(hubName, suffix string) string {
	base := strings.TrimSuffix(hubName, suffix)
	var b strings.Builder
	for _, part := range strings.FieldsFunc(base, func(r rune) bool { return r == '-' || r == '_' }) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
