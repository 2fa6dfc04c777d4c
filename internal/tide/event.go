package tide

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/tidegate/internal/logfields"
)

// Event is an inbound event that Tide processes.
// The implementations are the *Event types of this package.
type Event interface {
	// Name returns the GitHub webhook event and action name.
	Name() string
	// Validate returns an error wrapping ErrMissingField if a required
	// field is empty.
	Validate() error
	LogFields() []zap.Field
}

// Repository identifies a GitHub repository.
type Repository struct {
	Owner          string
	RepositoryName string
}

func (r *Repository) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.RepositoryName)
}

func (r *Repository) validate() error {
	if r.Owner == "" {
		return fmt.Errorf("%w: repository owner", ErrMissingField)
	}

	if r.RepositoryName == "" {
		return fmt.Errorf("%w: repository name", ErrMissingField)
	}

	return nil
}

func (r *Repository) logFields() []zap.Field {
	return []zap.Field{
		logfields.RepositoryOwner(r.Owner),
		logfields.Repository(r.RepositoryName),
	}
}

func validateRepositoryNames(names []string) error {
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("%w: name of repository %d", ErrMissingField, i)
		}
	}

	return nil
}

// InstallationCreatedEvent is sent when the GitHub App is installed.
type InstallationCreatedEvent struct {
	Account      string
	Repositories []string
}

func (*InstallationCreatedEvent) Name() string { return "installation.created" }

func (e *InstallationCreatedEvent) Validate() error {
	if e.Account == "" {
		return fmt.Errorf("%w: installation account login", ErrMissingField)
	}

	return validateRepositoryNames(e.Repositories)
}

func (e *InstallationCreatedEvent) LogFields() []zap.Field {
	return []zap.Field{
		logfields.RepositoryOwner(e.Account),
		zap.Strings("github.repositories", e.Repositories),
	}
}

// RepositoriesAddedEvent is sent when repositories are added to an
// installation.
type RepositoriesAddedEvent struct {
	Account      string
	Repositories []string
}

func (*RepositoriesAddedEvent) Name() string { return "installation_repositories.added" }

func (e *RepositoriesAddedEvent) Validate() error {
	if e.Account == "" {
		return fmt.Errorf("%w: installation account login", ErrMissingField)
	}

	return validateRepositoryNames(e.Repositories)
}

func (e *RepositoriesAddedEvent) LogFields() []zap.Field {
	return []zap.Field{
		logfields.RepositoryOwner(e.Account),
		zap.Strings("github.repositories", e.Repositories),
	}
}

// IssueOpenedEvent is sent when an issue was opened.
type IssueOpenedEvent struct {
	Repository
	IssueNumber int
}

func (*IssueOpenedEvent) Name() string { return "issues.opened" }

func (e *IssueOpenedEvent) Validate() error {
	if err := e.Repository.validate(); err != nil {
		return err
	}

	if e.IssueNumber <= 0 {
		return fmt.Errorf("%w: issue number", ErrMissingField)
	}

	return nil
}

func (e *IssueOpenedEvent) LogFields() []zap.Field {
	return append(e.Repository.logFields(), zap.Int("github.issue", e.IssueNumber))
}

// PullRequestOpenedEvent is sent when a pull request was opened, edited or
// reopened.
type PullRequestOpenedEvent struct {
	Repository
	// Action is one of opened, edited, reopened.
	Action            string
	PullRequestNumber int
	HeadSHA           string
	HeadRef           string
}

func (e *PullRequestOpenedEvent) Name() string { return "pull_request." + e.Action }

func (e *PullRequestOpenedEvent) Validate() error {
	if err := e.Repository.validate(); err != nil {
		return err
	}

	if e.PullRequestNumber <= 0 {
		return fmt.Errorf("%w: pull request number", ErrMissingField)
	}

	if e.HeadSHA == "" {
		return fmt.Errorf("%w: pull request head sha", ErrMissingField)
	}

	return nil
}

func (e *PullRequestOpenedEvent) LogFields() []zap.Field {
	return append(
		e.Repository.logFields(),
		logfields.PullRequest(e.PullRequestNumber),
		logfields.Commit(e.HeadSHA),
		logfields.Branch(e.HeadRef),
	)
}

// CommentEvent is sent when a comment on a pull request was created or
// edited.
type CommentEvent struct {
	Repository
	PullRequestNumber int
	Body              string
	Author            string
	// AuthorIsBot is true when the comment was written by a bot account.
	AuthorIsBot bool
}

func (*CommentEvent) Name() string { return "issue_comment" }

func (e *CommentEvent) Validate() error {
	if err := e.Repository.validate(); err != nil {
		return err
	}

	if e.PullRequestNumber <= 0 {
		return fmt.Errorf("%w: pull request number", ErrMissingField)
	}

	if e.Author == "" {
		return fmt.Errorf("%w: comment author", ErrMissingField)
	}

	return nil
}

func (e *CommentEvent) LogFields() []zap.Field {
	return append(
		e.Repository.logFields(),
		logfields.PullRequest(e.PullRequestNumber),
		logfields.Actor(e.Author),
	)
}

// LabelsChangedEvent is sent when a label was added or removed from a pull
// request.
type LabelsChangedEvent struct {
	Repository
	PullRequestNumber int
	HeadSHA           string
	HeadRef           string
	// Labels are the names of all labels the pull request has after the change.
	Labels []string
}

func (*LabelsChangedEvent) Name() string { return "pull_request.labels_changed" }

func (e *LabelsChangedEvent) Validate() error {
	if err := e.Repository.validate(); err != nil {
		return err
	}

	if e.PullRequestNumber <= 0 {
		return fmt.Errorf("%w: pull request number", ErrMissingField)
	}

	if e.HeadSHA == "" {
		return fmt.Errorf("%w: pull request head sha", ErrMissingField)
	}

	return nil
}

func (e *LabelsChangedEvent) LogFields() []zap.Field {
	return append(
		e.Repository.logFields(),
		logfields.PullRequest(e.PullRequestNumber),
		logfields.Commit(e.HeadSHA),
		logfields.Branch(e.HeadRef),
		logfields.Labels(e.Labels),
	)
}

// CheckSuiteCompletedEvent is sent when all check runs of a check suite
// completed.
type CheckSuiteCompletedEvent struct {
	Repository
	HeadSHA      string
	PullRequests []int
}

func (*CheckSuiteCompletedEvent) Name() string { return "check_suite.completed" }

func (e *CheckSuiteCompletedEvent) Validate() error {
	if err := e.Repository.validate(); err != nil {
		return err
	}

	if e.HeadSHA == "" {
		return fmt.Errorf("%w: check suite head sha", ErrMissingField)
	}

	for i, nr := range e.PullRequests {
		if nr <= 0 {
			return fmt.Errorf("%w: number of pull request %d", ErrMissingField, i)
		}
	}

	return nil
}

func (e *CheckSuiteCompletedEvent) LogFields() []zap.Field {
	return append(
		e.Repository.logFields(),
		logfields.Commit(e.HeadSHA),
		logfields.PullRequests(e.PullRequests),
	)
}
