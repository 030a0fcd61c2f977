package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport/http"

	"skillmcp/internal/logging"
	"skillmcp/pkg/fileops"
)

// GitSource serves skills from a remote Git repository. The repository is
// cloned into a local cache directory on first use and fetched on subsequent
// syncs. Authentication is tried public-first, falling back to a Personal
// Access Token from the OS credential store for private repositories.
type GitSource struct {
	RemoteURL string
	Branch    string // empty means the remote's default branch
	Path      string // local cache directory
}

// NewGitSource creates a Git-backed skill source.
func NewGitSource(remoteURL, branch, localPath string) GitSource {
	return GitSource{RemoteURL: remoteURL, Branch: branch, Path: localPath}
}

// Describe returns a short human-readable description of the source.
func (gs GitSource) Describe() string {
	if gs.Branch != "" {
		return fmt.Sprintf("git %s (branch %s)", gs.RemoteURL, gs.Branch)
	}
	return fmt.Sprintf("git %s", gs.RemoteURL)
}

// Prepare clones or updates the repository cache and returns the local path.
//
// When the cache directory is missing or empty it performs an initial clone.
// When it already holds a clone of the same remote it fetches updates,
// skipping the sync when the working tree has uncommitted changes so local
// edits are never discarded. A directory containing unrelated content is a
// conflict the user must resolve manually.
func (gs GitSource) Prepare(logger *logging.AppLogger) (string, error) {
	if strings.TrimSpace(gs.RemoteURL) == "" {
		return "", fmt.Errorf("remote URL cannot be empty")
	}
	if strings.TrimSpace(gs.Path) == "" {
		return "", fmt.Errorf("local path cannot be empty")
	}

	cleanPath, err := filepath.Abs(filepath.Clean(fileops.ExpandPath(gs.Path)))
	if err != nil {
		return "", fmt.Errorf("cannot resolve cache path: %w", err)
	}

	empty, err := dirMissingOrEmpty(cleanPath)
	if err != nil {
		return "", err
	}

	if empty {
		if err := gs.cloneWithAuth(cleanPath, logger); err != nil {
			return "", err
		}
		return cleanPath, nil
	}

	// Existing directory must be a clone of the same remote.
	if err := gs.validateExistingClone(cleanPath); err != nil {
		return "", err
	}

	if err := gs.fetchWithAuth(cleanPath, logger); err != nil {
		return "", err
	}
	return cleanPath, nil
}

// FetchUpdates refreshes an already-cloned repository. Unlike Prepare it
// fails when the cache directory does not exist.
func (gs GitSource) FetchUpdates(logger *logging.AppLogger) error {
	if _, err := os.Stat(gs.Path); os.IsNotExist(err) {
		return fmt.Errorf("repository does not exist at %s - run sync first", gs.Path)
	}
	return gs.fetchWithAuth(gs.Path, logger)
}

func dirMissingOrEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read cache directory: %w", err)
	}
	return len(entries) == 0, nil
}

// validateExistingClone checks that the directory holds a git clone whose
// origin matches the configured remote.
func (gs GitSource) validateExistingClone(localPath string) error {
	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return fmt.Errorf("directory %s exists but is not a git repository - remove it or choose another cache path", localPath)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return fmt.Errorf("repository at %s has no origin remote: %w", localPath, err)
	}

	for _, u := range remote.Config().URLs {
		if sameRepoURL(u, gs.RemoteURL) {
			return nil
		}
	}
	return fmt.Errorf("directory %s contains a clone of a different repository - remove it or choose another cache path", localPath)
}

// sameRepoURL compares two repository URLs ignoring a trailing .git suffix
// and trailing slashes.
func sameRepoURL(a, b string) bool {
	norm := func(u string) string {
		u = strings.TrimSuffix(strings.TrimRight(strings.TrimSpace(u), "/"), ".git")
		return strings.ToLower(u)
	}
	return norm(a) == norm(b)
}

func (gs GitSource) cloneWithAuth(localPath string, logger *logging.AppLogger) error {
	err := gs.clone(localPath, nil, logger)
	if err == nil {
		return nil
	}

	if isAuthenticationError(err) {
		if logger != nil {
			logger.Debug("Public clone failed, retrying with stored token")
		}
		auth, authErr := gs.getAuthentication(logger)
		if authErr != nil {
			return fmt.Errorf("git authentication failed: %w", authErr)
		}
		if auth == nil {
			return fmt.Errorf("repository requires authentication - store a Personal Access Token with 'skillmcp sync --token'")
		}
		return gs.clone(localPath, auth, logger)
	}
	return err
}

func (gs GitSource) clone(localPath string, auth *http.BasicAuth, logger *logging.AppLogger) error {
	if logger != nil {
		logger.Info("Cloning skill repository", "remoteURL", gs.RemoteURL, "localPath", localPath)
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	cloneOpts := &git.CloneOptions{
		URL:  gs.RemoteURL,
		Auth: auth,
	}
	if gs.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(gs.Branch)
		cloneOpts.SingleBranch = true
	}

	if _, err := git.PlainClone(localPath, cloneOpts); err != nil {
		return translateCloneError(err, gs.RemoteURL)
	}

	if logger != nil {
		logger.Info("Repository cloned", "localPath", localPath)
	}
	return nil
}

func (gs GitSource) fetchWithAuth(localPath string, logger *logging.AppLogger) error {
	err := gs.fetch(localPath, nil, logger)
	if err == nil {
		return nil
	}

	if isAuthenticationError(err) {
		if logger != nil {
			logger.Debug("Public fetch failed, retrying with stored token")
		}
		auth, authErr := gs.getAuthentication(logger)
		if authErr != nil {
			return fmt.Errorf("git authentication failed: %w", authErr)
		}
		if auth == nil {
			return fmt.Errorf("repository requires authentication - store a Personal Access Token with 'skillmcp sync --token'")
		}
		return gs.fetch(localPath, auth, logger)
	}
	return err
}

func (gs GitSource) fetch(localPath string, auth *http.BasicAuth, logger *logging.AppLogger) error {
	repo, err := git.PlainOpen(localPath)
	if err != nil {
		return fmt.Errorf("failed to open existing repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get working tree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to get working tree status: %w", err)
	}

	// Never clobber local edits. A dirty tree skips the sync, it does not
	// fail it.
	if !status.IsClean() {
		if logger != nil {
			logger.Warn("Working tree has uncommitted changes, skipping sync", "localPath", localPath)
		}
		return nil
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return fmt.Errorf("failed to get origin remote: %w", err)
	}

	err = remote.Fetch(&git.FetchOptions{
		Auth:  auth,
		Force: true,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return translateFetchError(err)
	}

	if logger != nil {
		if err == git.NoErrAlreadyUpToDate {
			logger.Debug("Repository already up to date", "localPath", localPath)
		} else {
			logger.Info("Repository updated", "localPath", localPath)
		}
	}

	if gs.Branch != "" {
		if err := checkoutBranch(worktree, gs.Branch); err != nil {
			if logger != nil {
				logger.Warn("Failed to checkout configured branch", "branch", gs.Branch, "error", err)
			}
			// Checkout failure does not fail the sync; the cached tree
			// stays usable while the user fixes the configuration.
		}
	}
	return nil
}

func checkoutBranch(worktree *git.Worktree, branch string) error {
	return worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
}

// getAuthentication returns PAT-based auth from the credential store, or nil
// when no token is stored.
func (gs GitSource) getAuthentication(logger *logging.AppLogger) (*http.BasicAuth, error) {
	credMgr := NewCredentialManager()
	if !credMgr.HasToken() {
		return nil, nil
	}

	token, err := credMgr.GetToken()
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Debug("Using stored Personal Access Token for authentication")
	}
	return &http.BasicAuth{
		Username: "token",
		Password: token,
	}, nil
}

var authErrorPatterns = []string{
	"authentication required",
	"authorization failed",
	"invalid credentials",
	"401",
	"403",
	"unauthorized",
	"forbidden",
}

func isAuthenticationError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range authErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func translateCloneError(err error, remoteURL string) error {
	msg := strings.ToLower(err.Error())

	if isAuthenticationError(err) {
		if strings.Contains(msg, "403") || strings.Contains(msg, "forbidden") {
			return fmt.Errorf("access token lacks required permissions - ensure the 'repo' scope is enabled")
		}
		return fmt.Errorf("git authentication failed - update your Personal Access Token with 'skillmcp sync --token'")
	}

	if strings.Contains(msg, "404") || strings.Contains(msg, "not found") {
		return fmt.Errorf("repository not found - check the URL or ensure you have access: %s", remoteURL)
	}

	if strings.Contains(msg, "network") || strings.Contains(msg, "connection") || strings.Contains(msg, "timeout") {
		return fmt.Errorf("network error during clone - check your connection and try again: %w", err)
	}

	return fmt.Errorf("failed to clone repository: %w", err)
}

func translateFetchError(err error) error {
	msg := strings.ToLower(err.Error())

	if isAuthenticationError(err) {
		return fmt.Errorf("git authentication failed during fetch - update your Personal Access Token with 'skillmcp sync --token'")
	}

	if strings.Contains(msg, "network") || strings.Contains(msg, "connection") || strings.Contains(msg, "timeout") {
		return fmt.Errorf("network error during fetch - the cached repository remains usable: %w", err)
	}

	return fmt.Errorf("failed to fetch repository updates: %w", err)
}
