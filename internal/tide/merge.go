package tide

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/tidegate/internal/githubclt"
	"github.com/simplesurance/tidegate/internal/logfields"
)

// MergeIfComplete merges all pull requests of the check suite when all check
// runs of the commit have the status completed.
// The conclusion of the check runs is not evaluated.
// The pull requests are merged concurrently, the first merge error is
// returned after all merge operations finished.
func (t *Tide) MergeIfComplete(ctx context.Context, ev *CheckSuiteCompletedEvent) error {
	return t.mergeIfComplete(ctx, t.logger.With(ev.LogFields()...), ev)
}

func (t *Tide) mergeIfComplete(ctx context.Context, logger *zap.Logger, ev *CheckSuiteCompletedEvent) error {
	runs, err := t.ghClient.ListCheckRuns(ctx, ev.Owner, ev.RepositoryName, ev.HeadSHA, "")
	if err != nil {
		return fmt.Errorf("listing check runs failed: %w", err)
	}

	if pending := incompleteCheckRuns(runs); len(pending) > 0 {
		logger.Debug(
			"not merging, check runs are not completed",
			logEventChecksIncomplete,
			zap.Strings("check_runs", pending),
		)
		return nil
	}

	return runAll(ev.PullRequests, func(prNumber int) error {
		logger := logger.With(logfields.PullRequest(prNumber))

		err := t.ghClient.MergePullRequest(ctx, ev.Owner, ev.RepositoryName, prNumber, t.cfg.MergeMethod)
		metrics.MergesInc(err)
		if err != nil {
			logger.Warn(
				"merging pull request failed",
				logEventMergeFailed,
				zap.Error(err),
			)
			return fmt.Errorf("merging pull request #%d failed: %w", prNumber, err)
		}

		logger.Info(
			"pull request merged",
			logEventMerged,
			zap.String("merge_method", t.cfg.MergeMethod),
		)

		return nil
	})
}

// incompleteCheckRuns returns the names of the check runs that do not have
// the status completed.
func incompleteCheckRuns(runs []*githubclt.CheckRun) []string {
	var result []string

	for _, cr := range runs {
		if cr.Status != githubclt.CheckRunStatusCompleted {
			result = append(result, cr.Name)
		}
	}

	return result
}
