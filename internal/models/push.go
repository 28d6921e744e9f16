package models

import (
	"sort"
	"strings"
)

// PushEvent is what the webhook handlers need from a provider's push payload
type PushEvent interface {
	RepositoryName() string
	Branch() string
	CommitCount() int
	ChangedFiles() []string
}

// PushCommit is a commit as both GitHub and Gitea report it
type PushCommit struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	URL      string   `json:"url"`
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Modified []string `json:"modified"`
}

// PushRepository identifies the pushed repository
type PushRepository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
}

// GitHubPushPayload is the subset of GitHub's push event used here
type GitHubPushPayload struct {
	Ref        string         `json:"ref"`
	Before     string         `json:"before"`
	After      string         `json:"after"`
	Compare    string         `json:"compare"`
	Deleted    bool           `json:"deleted"`
	Commits    []PushCommit   `json:"commits"`
	Repository PushRepository `json:"repository"`
}

// GiteaPushPayload is the subset of Gitea's push event used here
type GiteaPushPayload struct {
	Ref        string         `json:"ref"`
	Before     string         `json:"before"`
	After      string         `json:"after"`
	CompareURL string         `json:"compare_url"`
	Commits    []PushCommit   `json:"commits"`
	Repository PushRepository `json:"repository"`
}

// RepositoryName returns the owner/name of the repository
func (p GitHubPushPayload) RepositoryName() string { return p.Repository.FullName }

// Branch returns the branch name without refs/heads/ prefix
func (p GitHubPushPayload) Branch() string { return strings.TrimPrefix(p.Ref, "refs/heads/") }

// CommitCount returns the number of commits
func (p GitHubPushPayload) CommitCount() int { return len(p.Commits) }

// ChangedFiles returns the added or modified paths. A deleted branch changes nothing.
func (p GitHubPushPayload) ChangedFiles() []string {
	if p.Deleted {
		return nil
	}
	return changedFiles(p.Commits)
}

// RepositoryName returns the owner/name of the repository
func (p GiteaPushPayload) RepositoryName() string { return p.Repository.FullName }

// Branch returns the branch name without refs/heads/ prefix
func (p GiteaPushPayload) Branch() string { return strings.TrimPrefix(p.Ref, "refs/heads/") }

// CommitCount returns the number of commits
func (p GiteaPushPayload) CommitCount() int { return len(p.Commits) }

// ChangedFiles returns the added or modified paths
func (p GiteaPushPayload) ChangedFiles() []string { return changedFiles(p.Commits) }

// changedFiles collects the distinct added and modified paths, sorted.
// Removed files have no live version left to compare.
func changedFiles(commits []PushCommit) []string {
	seen := make(map[string]bool)
	for _, c := range commits {
		for _, f := range c.Added {
			seen[f] = true
		}
		for _, f := range c.Modified {
			seen[f] = true
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
