package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FetchResult reports where a remote source landed and which commit it
// resolved to.
type FetchResult struct {
	CommitHash string
	LocalPath  string
}

// Fetch clones spec.Git into a subdirectory of cacheDir named after name,
// checks out the commit spec's Rev/Tag/Branch resolves to, and returns the
// path to spec.Path within that checkout (or the checkout root if Path is
// empty). Programs that reference code living in another repository — the
// Sortle standard idioms, say, or a shared library of named expressions —
// use this the way the teacher interpreter resolves a git dependency.
func Fetch(cacheDir, name string, spec SourceSpec) (*FetchResult, error) {
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return nil, fmt.Errorf("fetch: source %q has no git URL", name)
	}

	revision, err := revisionFromSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("fetch: source %q: %w", name, err)
	}

	checkoutDir := filepath.Join(cacheDir, sanitizeName(name))
	if _, err := os.Stat(checkoutDir); err == nil {
		hash, resolveErr := resolveExistingCheckout(checkoutDir, revision)
		if resolveErr == nil {
			return &FetchResult{CommitHash: hash, LocalPath: joinSourcePath(checkoutDir, spec.Path)}, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(checkoutDir), 0o755); err != nil {
		return nil, fmt.Errorf("fetch: prepare cache dir: %w", err)
	}
	tmpDir, err := os.MkdirTemp(filepath.Dir(checkoutDir), "sortle-fetch-*")
	if err != nil {
		return nil, fmt.Errorf("fetch: create temp dir: %w", err)
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return nil, fmt.Errorf("fetch: clear temp dir: %w", err)
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:   url,
		Depth: 0,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("fetch: clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("fetch: resolve revision %s: %w", revision, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("fetch: worktree: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("fetch: checkout %s: %w", revision, err)
	}

	_ = os.RemoveAll(checkoutDir)
	if err := os.Rename(tmpDir, checkoutDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("fetch: install checkout: %w", err)
	}

	return &FetchResult{CommitHash: hash.String(), LocalPath: joinSourcePath(checkoutDir, spec.Path)}, nil
}

func resolveExistingCheckout(checkoutDir string, revision plumbing.Revision) (string, error) {
	repo, err := git.PlainOpen(checkoutDir)
	if err != nil {
		return "", err
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	if head.Hash() != *hash {
		return "", fmt.Errorf("checkout at different revision")
	}
	return hash.String(), nil
}

func revisionFromSpec(spec SourceSpec) (plumbing.Revision, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), nil
	}
	return "", fmt.Errorf("git sources require rev, tag, or branch")
}

func joinSourcePath(checkoutDir, sub string) string {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return checkoutDir
	}
	return filepath.Join(checkoutDir, sub)
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	result := b.String()
	if result == "" {
		return "source"
	}
	return result
}
