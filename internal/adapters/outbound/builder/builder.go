package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/openkraft/hubguard/internal/domain"
)

const outputTailLines = 20

// CommandBuilder implements domain.BuildInvoker by running an external
// command in the hub directory.
type CommandBuilder struct {
	command []string
	script  string
	logger  *slog.Logger
}

// New returns a builder running command. When script is non-empty, hubs
// whose package.json lacks that script are skipped.
func New(command []string, script string, logger *slog.Logger) *CommandBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandBuilder{command: command, script: script, logger: logger}
}

// Build runs the command and blocks until it exits.
func (b *CommandBuilder) Build(ctx context.Context, hub domain.Hub) domain.BuildResult {
	res := domain.BuildResult{HubName: hub.Name}

	if b.script != "" {
		if reason := b.skipReason(hub); reason != "" {
			b.logger.Info("skipping build", "hub", hub.Name, "reason", reason)
			res.Skipped = true
			res.Error = reason
			return res
		}
	}
	if len(b.command) == 0 {
		res.Error = "no build command configured"
		return res
	}

	cmd := exec.CommandContext(ctx, b.command[0], b.command[1:]...)
	cmd.Dir = hub.Path

	b.logger.Debug("running build", "hub", hub.Name, "command", strings.Join(b.command, " "))
	start := time.Now()
	out, err := cmd.CombinedOutput()
	res.BuildTime = time.Since(start).Milliseconds()

	if err != nil {
		res.Error = fmt.Sprintf("%v: %s", err, tail(string(out), outputTailLines))
		res.Error = strings.TrimSuffix(res.Error, ": ")
		b.logger.Warn("build failed", "hub", hub.Name, "error", err, "duration_ms", res.BuildTime)
		return res
	}
	res.Success = true
	return res
}

func (b *CommandBuilder) skipReason(hub domain.Hub) string {
	data, err := os.ReadFile(filepath.Join(hub.Path, "package.json"))
	if err != nil {
		return "no package.json"
	}
	m, err := domain.ParseManifest(data)
	if err != nil {
		return "unreadable package.json"
	}
	if !m.HasScript(b.script) {
		return fmt.Sprintf("no %q script", b.script)
	}
	return ""
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
