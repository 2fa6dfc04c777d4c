package githubclt

import (
	"context"
	"errors"
	"time"

	"github.com/google/go-github/v59/github"
)

const (
	CheckRunStatusQueued     = "queued"
	CheckRunStatusInProgress = "in_progress"
	CheckRunStatusCompleted  = "completed"

	CheckRunConclusionSuccess = "success"
)

// CheckRun is a check run reported for a commit.
type CheckRun struct {
	ID         int64
	Name       string
	Status     string
	Conclusion string
}

// CheckRunUpdate describes the changes applied by UpdateCheckRun.
// Empty fields are not changed.
type CheckRunUpdate struct {
	Name        string
	Status      string
	Conclusion  string
	CompletedAt time.Time
}

// ListCheckRuns returns all check runs for ref, ref can be a commit SHA, a
// branch or a tag name.
// If name is not empty only check runs with that name are returned.
func (clt *Client) ListCheckRuns(ctx context.Context, owner, repo, ref, name string) ([]*CheckRun, error) {
	var result []*CheckRun

	opts := github.ListCheckRunsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	if name != "" {
		opts.CheckName = &name
	}

	for {
		runs, resp, err := clt.restClt.Checks.ListCheckRunsForRef(ctx, owner, repo, ref, &opts)
		if err != nil {
			return nil, clt.wrapTransportError("list_check_runs", err)
		}

		for _, cr := range runs.CheckRuns {
			result = append(result, &CheckRun{
				ID:         cr.GetID(),
				Name:       cr.GetName(),
				Status:     cr.GetStatus(),
				Conclusion: cr.GetConclusion(),
			})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// CreateCheckRun creates a check run for the commit headSHA and returns its
// ID.
func (clt *Client) CreateCheckRun(ctx context.Context, owner, repo, name, headSHA, status string) (int64, error) {
	opts := github.CreateCheckRunOptions{
		Name:    name,
		HeadSHA: headSHA,
	}

	if status != "" {
		opts.Status = &status
	}

	cr, _, err := clt.restClt.Checks.CreateCheckRun(ctx, owner, repo, opts)
	if err != nil {
		return 0, clt.wrapTransportError("create_check_run", err)
	}

	if cr.GetID() == 0 {
		return 0, errors.New("github returned a check run without id")
	}

	return cr.GetID(), nil
}

// UpdateCheckRun updates the check run with the given ID.
func (clt *Client) UpdateCheckRun(ctx context.Context, owner, repo string, checkRunID int64, upd *CheckRunUpdate) error {
	opts := github.UpdateCheckRunOptions{
		Name: upd.Name,
	}

	if upd.Status != "" {
		opts.Status = &upd.Status
	}

	if upd.Conclusion != "" {
		opts.Conclusion = &upd.Conclusion
	}

	if !upd.CompletedAt.IsZero() {
		opts.CompletedAt = &github.Timestamp{Time: upd.CompletedAt}
	}

	_, _, err := clt.restClt.Checks.UpdateCheckRun(ctx, owner, repo, checkRunID, opts)
	return clt.wrapTransportError("update_check_run", err)
}
