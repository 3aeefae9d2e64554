package gitinfo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// GitInfoAdapter implements domain.StagedFileLister using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(projectPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}

func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// StagedFiles lists index changes relative to projectPath, sorted. Paths
// outside projectPath are dropped when the project is nested in a larger
// repository.
func (g *GitInfoAdapter) StagedFiles(projectPath string) ([]string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	prefix, err := projectPrefix(wt.Filesystem.Root(), projectPath)
	if err != nil {
		return nil, err
	}

	var staged []string
	for path, st := range status {
		if st.Staging == git.Unmodified || st.Staging == git.Untracked {
			continue
		}
		rel, ok := strings.CutPrefix(filepath.ToSlash(path), prefix)
		if !ok {
			continue
		}
		staged = append(staged, rel)
	}
	sort.Strings(staged)
	return staged, nil
}

// projectPrefix returns projectPath relative to the repository root as a
// slash-terminated prefix, or "" when they are the same directory.
func projectPrefix(repoRoot, projectPath string) (string, error) {
	absRoot, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		absRoot = repoRoot
	}
	absProject, err := filepath.Abs(projectPath)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(absProject); err == nil {
		absProject = resolved
	}
	rel, err := filepath.Rel(absRoot, absProject)
	if err != nil {
		return "", fmt.Errorf("locating project in repository: %w", err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel) + "/", nil
}
