package domain

import (
	"context"
	"time"
)

// HubLocator resolves hub names to directories under the packages root.
type HubLocator interface {
	Find(projectPath, hubName string) (Hub, error)
	All(projectPath string) ([]Hub, error)
}

// SourceWalker enumerates the scannable source files of a hub, as paths
// relative to the hub root in lexical depth-first order.
type SourceWalker interface {
	Walk(hub Hub) ([]string, error)
}

// FileScanner applies the rule set to one file. A non-nil error means the
// file could not be read; the file then contributes no violations.
type FileScanner interface {
	ScanFile(hub Hub, relPath string) ([]Violation, error)
}

// ConfigLoader reads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// BuildInvoker runs one hub's external build and waits for it to exit.
type BuildInvoker interface {
	Build(ctx context.Context, hub Hub) BuildResult
}

// StagedFileLister returns project-relative, slash-separated staged paths.
type StagedFileLister interface {
	StagedFiles(projectPath string) ([]string, error)
}

// ReportWriter persists a run's JSON artifact.
type ReportWriter interface {
	Write(path string, report any) error
}

// Clock supplies report timestamps.
type Clock func() time.Time

// RevisionReader reports the commit a report was produced against.
type RevisionReader interface {
	CommitHash(projectPath string) (string, error)
}
