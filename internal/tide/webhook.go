package tide

import (
	"fmt"

	"github.com/google/go-github/v59/github"
)

const botUserType = "Bot"

// EventFromWebhook converts a webhook event returned by github.ParseWebHook()
// into an Event.
// For event types and actions that tide does not process an error wrapping
// ErrEventIgnored is returned. The returned Event is validated.
func EventFromWebhook(ghEvent any) (Event, error) {
	ev, err := convertWebhook(ghEvent)
	if err != nil {
		return nil, err
	}

	if err := ev.Validate(); err != nil {
		return nil, fmt.Errorf("%s event is invalid: %w", ev.Name(), err)
	}

	return ev, nil
}

func repositoryFromGithub(repo *github.Repository) Repository {
	return Repository{
		Owner:          repo.GetOwner().GetLogin(),
		RepositoryName: repo.GetName(),
	}
}

func repositoryNames(repos []*github.Repository) []string {
	result := make([]string, 0, len(repos))

	for _, r := range repos {
		result = append(result, r.GetName())
	}

	return result
}

func labelNames(labels []*github.Label) []string {
	result := make([]string, 0, len(labels))

	for _, l := range labels {
		result = append(result, l.GetName())
	}

	return result
}

func ignored(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrEventIgnored, fmt.Sprintf(format, a...))
}

func convertWebhook(ghEvent any) (Event, error) {
	switch ev := ghEvent.(type) {
	case *github.InstallationEvent:
		if ev.GetAction() != "created" {
			return nil, ignored("installation event with action %q", ev.GetAction())
		}

		return &InstallationCreatedEvent{
			Account:      ev.GetInstallation().GetAccount().GetLogin(),
			Repositories: repositoryNames(ev.Repositories),
		}, nil

	case *github.InstallationRepositoriesEvent:
		if ev.GetAction() != "added" {
			return nil, ignored("installation_repositories event with action %q", ev.GetAction())
		}

		return &RepositoriesAddedEvent{
			Account:      ev.GetInstallation().GetAccount().GetLogin(),
			Repositories: repositoryNames(ev.RepositoriesAdded),
		}, nil

	case *github.IssuesEvent:
		if ev.GetAction() != "opened" {
			return nil, ignored("issues event with action %q", ev.GetAction())
		}

		return &IssueOpenedEvent{
			Repository:  repositoryFromGithub(ev.GetRepo()),
			IssueNumber: ev.GetIssue().GetNumber(),
		}, nil

	case *github.PullRequestEvent:
		return convertPullRequestEvent(ev)

	case *github.IssueCommentEvent:
		switch ev.GetAction() {
		case "created", "edited":
		default:
			return nil, ignored("issue_comment event with action %q", ev.GetAction())
		}

		if !ev.GetIssue().IsPullRequest() {
			return nil, ignored("comment is not on a pull request")
		}

		return &CommentEvent{
			Repository:        repositoryFromGithub(ev.GetRepo()),
			PullRequestNumber: ev.GetIssue().GetNumber(),
			Body:              ev.GetComment().GetBody(),
			Author:            ev.GetComment().GetUser().GetLogin(),
			AuthorIsBot:       ev.GetComment().GetUser().GetType() == botUserType,
		}, nil

	case *github.CheckSuiteEvent:
		if ev.GetAction() != "completed" {
			return nil, ignored("check_suite event with action %q", ev.GetAction())
		}

		prs := make([]int, 0, len(ev.GetCheckSuite().PullRequests))
		for _, pr := range ev.GetCheckSuite().PullRequests {
			prs = append(prs, pr.GetNumber())
		}

		return &CheckSuiteCompletedEvent{
			Repository:   repositoryFromGithub(ev.GetRepo()),
			HeadSHA:      ev.GetCheckSuite().GetHeadSHA(),
			PullRequests: prs,
		}, nil

	default:
		return nil, ignored("unsupported event type %T", ghEvent)
	}
}

func convertPullRequestEvent(ev *github.PullRequestEvent) (Event, error) {
	pr := ev.GetPullRequest()

	switch action := ev.GetAction(); action {
	case "opened", "edited", "reopened":
		return &PullRequestOpenedEvent{
			Repository:        repositoryFromGithub(ev.GetRepo()),
			Action:            action,
			PullRequestNumber: pr.GetNumber(),
			HeadSHA:           pr.GetHead().GetSHA(),
			HeadRef:           pr.GetHead().GetRef(),
		}, nil

	case "labeled", "unlabeled":
		return &LabelsChangedEvent{
			Repository:        repositoryFromGithub(ev.GetRepo()),
			PullRequestNumber: pr.GetNumber(),
			HeadSHA:           pr.GetHead().GetSHA(),
			HeadRef:           pr.GetHead().GetRef(),
			Labels:            labelNames(pr.Labels),
		}, nil

	default:
		return nil, ignored("pull_request event with action %q", action)
	}
}
