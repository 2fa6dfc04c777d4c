package tide

import (
	"testing"

	"github.com/google/go-github/v59/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGithubPullRequest(number int, labels ...string) *github.PullRequest {
	pr := github.PullRequest{
		Number: github.Int(number),
		Head: &github.PullRequestBranch{
			SHA: github.String(headSHA),
			Ref: github.String("pr"),
		},
	}

	for _, l := range labels {
		pr.Labels = append(pr.Labels, &github.Label{Name: github.String(l)})
	}

	return &pr
}

func TestEventFromWebhook(t *testing.T) {
	testcases := []struct {
		name     string
		ghEvent  any
		expected Event
	}{
		{
			name: "installationCreated",
			ghEvent: &github.InstallationEvent{
				Action: github.String("created"),
				Installation: &github.Installation{
					Account: &github.User{Login: github.String(repoOwner)},
				},
				Repositories: []*github.Repository{
					{Name: github.String("repo1")},
					{Name: github.String("repo2")},
				},
			},
			expected: &InstallationCreatedEvent{
				Account:      repoOwner,
				Repositories: []string{"repo1", "repo2"},
			},
		},
		{
			name: "repositoriesAdded",
			ghEvent: &github.InstallationRepositoriesEvent{
				Action: github.String("added"),
				Installation: &github.Installation{
					Account: &github.User{Login: github.String(repoOwner)},
				},
				RepositoriesAdded: []*github.Repository{{Name: github.String("repo3")}},
			},
			expected: &RepositoriesAddedEvent{
				Account:      repoOwner,
				Repositories: []string{"repo3"},
			},
		},
		{
			name: "issueOpened",
			ghEvent: &github.IssuesEvent{
				Action: github.String("opened"),
				Repo:   newGithubRepo(),
				Issue:  &github.Issue{Number: github.Int(5)},
			},
			expected: &IssueOpenedEvent{Repository: testRepository(), IssueNumber: 5},
		},
		{
			name: "pullRequestReopened",
			ghEvent: &github.PullRequestEvent{
				Action:      github.String("reopened"),
				Repo:        newGithubRepo(),
				PullRequest: newGithubPullRequest(1),
			},
			expected: &PullRequestOpenedEvent{
				Repository:        testRepository(),
				Action:            "reopened",
				PullRequestNumber: 1,
				HeadSHA:           headSHA,
				HeadRef:           "pr",
			},
		},
		{
			name: "pullRequestUnlabeled",
			ghEvent: &github.PullRequestEvent{
				Action:      github.String("unlabeled"),
				Repo:        newGithubRepo(),
				PullRequest: newGithubPullRequest(1, "lgtm", "approved"),
			},
			expected: &LabelsChangedEvent{
				Repository:        testRepository(),
				PullRequestNumber: 1,
				HeadSHA:           headSHA,
				HeadRef:           "pr",
				Labels:            []string{"lgtm", "approved"},
			},
		},
		{
			name: "commentOnPullRequest",
			ghEvent: &github.IssueCommentEvent{
				Action: github.String("edited"),
				Repo:   newGithubRepo(),
				Issue: &github.Issue{
					Number:           github.Int(2),
					PullRequestLinks: &github.PullRequestLinks{URL: github.String("https://api.github.com/repos/testman/repo/pulls/2")},
				},
				Comment: &github.IssueComment{
					Body: github.String("/lgtm"),
					User: &github.User{Login: github.String("alice"), Type: github.String("User")},
				},
			},
			expected: &CommentEvent{
				Repository:        testRepository(),
				PullRequestNumber: 2,
				Body:              "/lgtm",
				Author:            "alice",
			},
		},
		{
			name: "commentByBot",
			ghEvent: &github.IssueCommentEvent{
				Action: github.String("created"),
				Repo:   newGithubRepo(),
				Issue: &github.Issue{
					Number:           github.Int(2),
					PullRequestLinks: &github.PullRequestLinks{},
				},
				Comment: &github.IssueComment{
					Body: github.String("Thanks"),
					User: &github.User{Login: github.String("tidebot[bot]"), Type: github.String("Bot")},
				},
			},
			expected: &CommentEvent{
				Repository:        testRepository(),
				PullRequestNumber: 2,
				Body:              "Thanks",
				Author:            "tidebot[bot]",
				AuthorIsBot:       true,
			},
		},
		{
			name: "checkSuiteCompleted",
			ghEvent: &github.CheckSuiteEvent{
				Action: github.String("completed"),
				Repo:   newGithubRepo(),
				CheckSuite: &github.CheckSuite{
					HeadSHA:      github.String(headSHA),
					PullRequests: []*github.PullRequest{{Number: github.Int(1)}, {Number: github.Int(7)}},
				},
			},
			expected: &CheckSuiteCompletedEvent{
				Repository:   testRepository(),
				HeadSHA:      headSHA,
				PullRequests: []int{1, 7},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := EventFromWebhook(tc.ghEvent)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ev)
		})
	}
}

func TestEventFromWebhookIgnoresEvents(t *testing.T) {
	testcases := []struct {
		name    string
		ghEvent any
	}{
		{name: "unsupportedType", ghEvent: &github.PushEvent{}},
		{name: "installationDeleted", ghEvent: &github.InstallationEvent{Action: github.String("deleted")}},
		{name: "repositoriesRemoved", ghEvent: &github.InstallationRepositoriesEvent{Action: github.String("removed")}},
		{name: "issueClosed", ghEvent: &github.IssuesEvent{Action: github.String("closed")}},
		{name: "pullRequestClosed", ghEvent: &github.PullRequestEvent{Action: github.String("closed")}},
		{name: "commentDeleted", ghEvent: &github.IssueCommentEvent{Action: github.String("deleted")}},
		{
			name: "commentOnIssue",
			ghEvent: &github.IssueCommentEvent{
				Action: github.String("created"),
				Repo:   newGithubRepo(),
				Issue:  &github.Issue{Number: github.Int(2)},
			},
		},
		{name: "checkSuiteRequested", ghEvent: &github.CheckSuiteEvent{Action: github.String("requested")}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EventFromWebhook(tc.ghEvent)
			assert.ErrorIs(t, err, ErrEventIgnored)
		})
	}
}

func TestEventFromWebhookValidatesRequiredFields(t *testing.T) {
	testcases := []struct {
		name    string
		ghEvent any
	}{
		{
			name: "installationWithoutAccount",
			ghEvent: &github.InstallationEvent{
				Action:       github.String("created"),
				Installation: &github.Installation{},
			},
		},
		{
			name: "pullRequestWithoutHeadSHA",
			ghEvent: &github.PullRequestEvent{
				Action:      github.String("labeled"),
				Repo:        newGithubRepo(),
				PullRequest: &github.PullRequest{Number: github.Int(1)},
			},
		},
		{
			name: "pullRequestWithoutRepository",
			ghEvent: &github.PullRequestEvent{
				Action:      github.String("opened"),
				PullRequest: newGithubPullRequest(1),
			},
		},
		{
			name: "commentWithoutAuthor",
			ghEvent: &github.IssueCommentEvent{
				Action: github.String("created"),
				Repo:   newGithubRepo(),
				Issue: &github.Issue{
					Number:           github.Int(2),
					PullRequestLinks: &github.PullRequestLinks{},
				},
				Comment: &github.IssueComment{Body: github.String("/lgtm")},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EventFromWebhook(tc.ghEvent)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
}
