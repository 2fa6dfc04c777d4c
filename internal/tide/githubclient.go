package tide

import (
	"context"

	"github.com/simplesurance/tidegate/internal/githubclt"
)

//go:generate mockgen -destination mocks/mock_githubclient.go -package mocks . GithubClient

// GithubClient is the subset of the GitHub API that Tide uses.
type GithubClient interface {
	ListLabels(ctx context.Context, owner, repo string) ([]string, error)
	CreateLabel(ctx context.Context, owner, repo string, label *githubclt.Label) error
	AddLabels(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int, labels []string) error
	CreateIssueComment(ctx context.Context, owner, repo string, issueOrPRNr int, comment string) error
	ListCheckRuns(ctx context.Context, owner, repo, ref, name string) ([]*githubclt.CheckRun, error)
	CreateCheckRun(ctx context.Context, owner, repo, name, headSHA, status string) (int64, error)
	UpdateCheckRun(ctx context.Context, owner, repo string, checkRunID int64, upd *githubclt.CheckRunUpdate) error
	FileContent(ctx context.Context, owner, repo, filePath, ref string) ([]byte, error)
	PullRequestBaseRef(ctx context.Context, owner, repo string, pullRequestNumber int) (string, error)
	MergePullRequest(ctx context.Context, owner, repo string, pullRequestNumber int, method string) error
}
