// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v59/github"
	"github.com/gregjones/httpcache"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/tidegate/internal/logfields"
	"github.com/simplesurance/tidegate/internal/tideerr"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

const perPage = 100

// New returns a new github api client.
// If apiURL is not empty, it is used as base URL of the REST API of a GitHub
// Enterprise server.
func New(oauthAPItoken, apiURL string) (*Client, error) {
	return newClient(newHTTPClient(oauthAPItoken), apiURL)
}

func newClient(httpClient *http.Client, apiURL string) (*Client, error) {
	restClt := github.NewClient(httpClient)
	graphQLClt := githubv4.NewClient(httpClient)

	if apiURL != "" {
		var err error

		restClt, err = restClt.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("configuring api url failed: %w", err)
		}

		graphQLClt = githubv4.NewEnterpriseClient(graphQLURL(restClt.BaseURL), httpClient)
	}

	return &Client{
		restClt:    restClt,
		graphQLClt: graphQLClt,
		logger:     zap.L().Named(loggerName),
	}, nil
}

// graphQLURL returns the GraphQL endpoint of a GitHub Enterprise server, the
// REST API is served at /api/v3/, GraphQL at /api/graphql.
func graphQLURL(restBaseURL *url.URL) string {
	u := *restBaseURL
	u.Path = path.Join(path.Dir(strings.TrimSuffix(u.Path, "/")), "graphql")

	return u.String()
}

// newHTTPClient returns a client with the following transport stack:
//  1. go-github-ratelimit, sleeps when the secondary rate limit is hit,
//  2. revalidation of every GET request via ETags, responses are never
//     served from the cache without asking GitHub,
//  3. httpcache, in-memory cache for conditional requests,
//  4. oauth2 token authentication.
func newHTTPClient(apiToken string) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport

	if apiToken != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiToken}),
			Base:   transport,
		}
	}

	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = transport

	clt := github_ratelimit.NewClient(&revalidateTransport{next: cacheTransport})
	clt.Timeout = DefaultHTTPClientTimeout

	return clt
}

// revalidateTransport sets a max-age=0 Cache-Control header for GET requests.
// This causes httpcache to send conditional requests instead of returning
// cached responses.
type revalidateTransport struct {
	next http.RoundTripper
}

func (t *revalidateTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("Cache-Control", "max-age=0")

	return t.next.RoundTrip(req)
}

// Client is an github API client.
// All methods return a tideerr.TransportError when an API operation failed.
type Client struct {
	restClt    *github.Client
	graphQLClt *githubv4.Client
	logger     *zap.Logger
}

// Label is a label definition of a repository.
type Label struct {
	Name        string
	Color       string
	Description string
}

// ListLabels returns the names of all labels defined in a repository.
func (clt *Client) ListLabels(ctx context.Context, owner, repo string) ([]string, error) {
	var result []string

	opts := github.ListOptions{PerPage: perPage}

	for {
		labels, resp, err := clt.restClt.Issues.ListLabels(ctx, owner, repo, &opts)
		if err != nil {
			return nil, clt.wrapTransportError("list_labels", err)
		}

		for _, l := range labels {
			result = append(result, l.GetName())
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// CreateLabel creates a label in the repository.
func (clt *Client) CreateLabel(ctx context.Context, owner, repo string, label *Label) error {
	_, _, err := clt.restClt.Issues.CreateLabel(ctx, owner, repo, &github.Label{
		Name:        &label.Name,
		Color:       &label.Color,
		Description: &label.Description,
	})

	return clt.wrapTransportError("create_label", err)
}

// AddLabels adds labels to Pull-Request or Issue.
// Labels that the Pull-Request or Issue already has are kept.
func (clt *Client) AddLabels(ctx context.Context, owner, repo string, pullRequestOrIssueNumber int, labels []string) error {
	if len(labels) == 0 {
		// by default github removes all labels when none is provided,
		// we do not need this functionality, as safe guard fail if
		// because of a bug an empty label list is passed:
		return errors.New("provided label list is empty")
	}

	for _, l := range labels {
		if l == "" {
			return errors.New("provided label list contains an empty label")
		}
	}

	_, _, err := clt.restClt.Issues.AddLabelsToIssue(ctx, owner, repo, pullRequestOrIssueNumber, labels)
	return clt.wrapTransportError("add_labels", err)
}

// CreateIssueComment creates a comment in a issue or pull request
func (clt *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueOrPRNr int, comment string) error {
	_, _, err := clt.restClt.Issues.CreateComment(ctx, owner, repo, issueOrPRNr, &github.IssueComment{Body: &comment})
	return clt.wrapTransportError("create_issue_comment", err)
}

// FileContent returns the content of the file at path in the repository.
// If ref is empty the file is read from the default branch.
func (clt *Client) FileContent(ctx context.Context, owner, repo, filePath, ref string) ([]byte, error) {
	file, _, _, err := clt.restClt.Repositories.GetContents(
		ctx, owner, repo, filePath,
		&github.RepositoryContentGetOptions{Ref: ref},
	)
	if err != nil {
		return nil, clt.wrapTransportError("get_contents", err)
	}

	if file == nil {
		return nil, fmt.Errorf("%s is not a file", filePath)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding content of %s failed: %w", filePath, err)
	}

	return []byte(content), nil
}

// PullRequestBaseRef returns the name of the branch a pull request is based on.
func (clt *Client) PullRequestBaseRef(ctx context.Context, owner, repo string, pullRequestNumber int) (string, error) {
	pr, _, err := clt.restClt.PullRequests.Get(ctx, owner, repo, pullRequestNumber)
	if err != nil {
		return "", clt.wrapTransportError("get_pull_request", err)
	}

	baseRef := pr.GetBase().GetRef()
	if baseRef == "" {
		return "", errors.New("got pull request object with empty base ref field")
	}

	return baseRef, nil
}

// MergePullRequest merges a pull request with the given method ("merge",
// "squash" or "rebase").
func (clt *Client) MergePullRequest(ctx context.Context, owner, repo string, pullRequestNumber int, method string) error {
	_, _, err := clt.restClt.PullRequests.Merge(
		ctx, owner, repo, pullRequestNumber, "",
		&github.PullRequestOptions{MergeMethod: method},
	)

	return clt.wrapTransportError("merge_pull_request", err)
}

func (clt *Client) wrapTransportError(op string, err error) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.String("github_api_operation", op),
			zap.Int("github_api_rate_limit", rateLimitErr.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", rateLimitErr.Rate.Reset.Time),
		)

		return tideerr.NewTemporaryTransportError(op, err, rateLimitErr.Rate.Reset.Time)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var retryAfter time.Time
		if d := abuseErr.GetRetryAfter(); d > 0 {
			retryAfter = time.Now().Add(d)
		}

		return tideerr.NewTemporaryTransportError(op, err, retryAfter)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		if respErr.Response.StatusCode >= 500 && respErr.Response.StatusCode < 600 {
			return tideerr.NewTemporaryTransportError(op, err, time.Time{})
		}
	}

	return tideerr.NewTransportError(op, err)
}

var graphQlHTTPStatusErrRe = regexp.MustCompile(`^non-200 OK status code: ([0-9]+) .*`)

func (clt *Client) wrapGraphQLTransportError(op string, err error) error {
	if err == nil {
		return nil
	}

	matches := graphQlHTTPStatusErrRe.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return tideerr.NewTransportError(op, err)
	}

	errcode, atoiErr := strconv.Atoi(matches[1])
	if atoiErr != nil {
		clt.logger.Info(
			"parsing http code from error string failed",
			zap.Error(atoiErr),
			zap.String("error_string", err.Error()),
			zap.String("http_errcode", matches[1]),
		)
		return tideerr.NewTransportError(op, err)
	}

	if errcode >= 500 && errcode < 600 {
		return tideerr.NewTemporaryTransportError(op, err, time.Time{})
	}

	return tideerr.NewTransportError(op, err)
}
