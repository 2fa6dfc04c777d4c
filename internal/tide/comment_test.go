package tide

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/tidegate/internal/owners"
	"github.com/simplesurance/tidegate/internal/tide/mocks"
)

const baseBranch = "main"

const ownersFile = `approvers:
  - Alice
reviewers:
  - bob
`

func newCommentEvent(author, body string) *CommentEvent {
	return &CommentEvent{
		Repository:        testRepository(),
		PullRequestNumber: 2,
		Body:              body,
		Author:            author,
	}
}

func mockPolicyRetrieval(clt *mocks.MockGithubClient, ownersFileContent string) {
	baseRefCall := clt.EXPECT().
		PullRequestBaseRef(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(2)).
		Return(baseBranch, nil)

	clt.EXPECT().
		FileContent(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq("OWNERS"), gomock.Eq(baseBranch)).
		Return([]byte(ownersFileContent), nil).
		After(baseRefCall)
}

func mockAddLabels(clt *mocks.MockGithubClient, labels ...string) *gomock.Call {
	return clt.EXPECT().
		AddLabels(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(2), gomock.Eq(labels)).
		Return(nil).
		Times(1)
}

func TestProcessCommentAuthorization(t *testing.T) {
	testcases := []struct {
		name           string
		author         string
		body           string
		expectedLabels []string
	}{
		{
			name:           "approverGetsAllLabels",
			author:         "alice",
			body:           "/approve\n/lgtm",
			expectedLabels: []string{"approved", "lgtm"},
		},
		{
			name:           "loginIsCaseInsensitive",
			author:         "ALICE",
			body:           "/lgtm\r\n/approve\r\n",
			expectedLabels: []string{"lgtm", "approved"},
		},
		{
			name:           "reviewerCanNotApprove",
			author:         "bob",
			body:           "/approve\n/lgtm",
			expectedLabels: []string{"lgtm"},
		},
		{
			name:           "unprivilegedLabelsForEveryone",
			author:         "mallory",
			body:           "/lgtm\n/kind bug\n/hold",
			expectedLabels: []string{"kind/bug", "do-not-merge/hold"},
		},
		{
			name:           "approverFullComment",
			author:         "alice",
			body:           "/lgtm\n/approve\n/kind bug\n/hold",
			expectedLabels: []string{"lgtm", "approved", "kind/bug", "do-not-merge/hold"},
		},
		{
			name:           "duplicatesAreRemoved",
			author:         "bob",
			body:           "/lgtm\n/lgtm extra words\n",
			expectedLabels: []string{"lgtm"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			tide, clt := newTestTide(t)

			mockPolicyRetrieval(clt, ownersFile)
			mockAddLabels(clt, tc.expectedLabels...)

			err := tide.ProcessComment(context.Background(), newCommentEvent(tc.author, tc.body))
			require.NoError(t, err)
		})
	}
}

func TestProcessCommentAllLabelsDenied(t *testing.T) {
	tide, clt := newTestTide(t)

	mockPolicyRetrieval(clt, ownersFile)

	err := tide.ProcessComment(context.Background(), newCommentEvent("mallory", "/approve\n/lgtm"))
	require.NoError(t, err)
}

func TestProcessCommentWithoutCommands(t *testing.T) {
	for _, body := range []string{"", "looks good", "/", "/unknown\n/kind", "text /lgtm"} {
		t.Run(body, func(t *testing.T) {
			tide, _ := newTestTide(t)

			err := tide.ProcessComment(context.Background(), newCommentEvent("alice", body))
			require.NoError(t, err)
		})
	}
}

func TestProcessCommentIgnoresBotComments(t *testing.T) {
	t.Run("ownLogin", func(t *testing.T) {
		tide, _ := newTestTide(t)

		err := tide.ProcessComment(context.Background(), newCommentEvent("TideBot", "/lgtm"))
		require.NoError(t, err)
	})

	t.Run("botUserType", func(t *testing.T) {
		tide, _ := newTestTide(t)

		ev := newCommentEvent("otherbot", "/lgtm")
		ev.AuthorIsBot = true

		err := tide.ProcessComment(context.Background(), ev)
		require.NoError(t, err)
	})
}

func TestProcessCommentMalformedPolicy(t *testing.T) {
	for _, content := range []string{"", "approvers: [alice", "- alice\n- bob\n"} {
		t.Run(content, func(t *testing.T) {
			tide, clt := newTestTide(t)

			mockPolicyRetrieval(clt, content)

			err := tide.ProcessComment(context.Background(), newCommentEvent("alice", "/lgtm\n/kind bug"))
			require.Error(t, err)
			assert.ErrorIs(t, err, owners.ErrMalformedPolicy)
		})
	}
}

func TestProcessCommentPolicyRetrievalFails(t *testing.T) {
	tide, clt := newTestTide(t)
	errMocked := errors.New("mocked error")

	clt.EXPECT().
		PullRequestBaseRef(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(baseBranch, nil)
	clt.EXPECT().
		FileContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errMocked)

	err := tide.ProcessComment(context.Background(), newCommentEvent("alice", "/kind bug"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errMocked)
}

func TestGreetIssue(t *testing.T) {
	tide, clt := newTestTide(t, func(cfg *Config) {
		cfg.IssueGreeting = "Thanks for opening this issue!"
	})

	clt.EXPECT().
		CreateIssueComment(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(9), gomock.Eq("Thanks for opening this issue!")).
		Return(nil).
		Times(1)

	err := tide.GreetIssue(context.Background(), &IssueOpenedEvent{Repository: testRepository(), IssueNumber: 9})
	require.NoError(t, err)
}

func TestGreetIssueDisabled(t *testing.T) {
	tide, _ := newTestTide(t)

	err := tide.GreetIssue(context.Background(), &IssueOpenedEvent{Repository: testRepository(), IssueNumber: 9})
	require.NoError(t, err)
}
