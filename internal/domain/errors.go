package domain

import "errors"

// Configuration errors abort a run before any scanning.
var (
	ErrNoTarget     = errors.New("must specify --hub=<hub-name> or --all-hubs")
	ErrHubNotFound  = errors.New("hub not found")
	ErrNoHubs       = errors.New("no hubs found for validation")
	ErrUnknownLevel = errors.New("unknown compliance level")
)

// Gating failures are ordinary negative verdicts surfaced as errors so the
// CLI exits non-zero.
var (
	ErrNonCompliant  = errors.New("compliance violations detected")
	ErrBuildHalted   = errors.New("build halted by compliance violations")
	ErrBuildFailed   = errors.New("production build failed")
	ErrCommitBlocked = errors.New("commit blocked by infrastructure violations")
	ErrNotPassed     = errors.New("hub validation failed")
)
