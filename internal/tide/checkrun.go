package tide

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/tidegate/internal/gate"
	"github.com/simplesurance/tidegate/internal/githubclt"
	"github.com/simplesurance/tidegate/internal/logfields"
)

// ArmCheckRun sets the status of the tide check run of the pull request's
// head commit to in_progress, the check run is created if it does not exist.
// For newly opened pull requests the greeting comment is posted afterwards.
func (t *Tide) ArmCheckRun(ctx context.Context, ev *PullRequestOpenedEvent) error {
	return t.armCheckRun(ctx, t.logger.With(ev.LogFields()...), ev)
}

func (t *Tide) armCheckRun(ctx context.Context, logger *zap.Logger, ev *PullRequestOpenedEvent) error {
	cr, err := t.findCheckRun(ctx, &ev.Repository, ev.HeadSHA)
	if err != nil {
		return err
	}

	if cr == nil {
		if _, err := t.createCheckRun(ctx, logger, &ev.Repository, ev.HeadSHA); err != nil {
			return err
		}
	} else {
		err := t.ghClient.UpdateCheckRun(ctx, ev.Owner, ev.RepositoryName, cr.ID, &githubclt.CheckRunUpdate{
			Name:   t.cfg.CheckRunName,
			Status: githubclt.CheckRunStatusInProgress,
		})
		if err != nil {
			return fmt.Errorf("setting status of check run %d to %s failed: %w", cr.ID, githubclt.CheckRunStatusInProgress, err)
		}

		metrics.CheckRunOpsInc(operationLabelRestartVal)
		logger.Info(
			"check run restarted",
			logEventCheckRunRestarted,
			logfields.CheckRunID(cr.ID),
		)
	}

	if ev.Action != "opened" {
		return nil
	}

	return t.postGreeting(ctx, logger, &ev.Repository, ev.PullRequestNumber, t.cfg.PullRequestGreeting)
}

// SyncCheckRun evaluates the merge gate for the labels of the pull request.
// If the gate passes, the tide check run of the head commit is completed
// successfully. If it does not pass, the check run is not changed.
// A missing check run is created.
func (t *Tide) SyncCheckRun(ctx context.Context, ev *LabelsChangedEvent) error {
	return t.syncCheckRun(ctx, t.logger.With(ev.LogFields()...), ev)
}

func (t *Tide) syncCheckRun(ctx context.Context, logger *zap.Logger, ev *LabelsChangedEvent) error {
	var checkRunID int64

	cr, err := t.findCheckRun(ctx, &ev.Repository, ev.HeadSHA)
	if err != nil {
		return err
	}

	if cr == nil {
		checkRunID, err = t.createCheckRun(ctx, logger, &ev.Repository, ev.HeadSHA)
		if err != nil {
			return err
		}
	} else {
		checkRunID = cr.ID
	}

	logger = logger.With(logfields.CheckRunID(checkRunID))

	verdict := gate.Evaluate(t.cfg.Rules, ev.Labels)
	metrics.GateEvaluationsInc(verdict.Pass())
	logger.Debug(
		"merge gate evaluated",
		logEventGateEvaluated,
		zap.Stringer("verdict", verdict),
	)

	if !verdict.Pass() {
		return nil
	}

	err = t.ghClient.UpdateCheckRun(ctx, ev.Owner, ev.RepositoryName, checkRunID, &githubclt.CheckRunUpdate{
		Name:        t.cfg.CheckRunName,
		Status:      githubclt.CheckRunStatusCompleted,
		Conclusion:  githubclt.CheckRunConclusionSuccess,
		CompletedAt: t.now(),
	})
	if err != nil {
		return fmt.Errorf("completing check run %d failed: %w", checkRunID, err)
	}

	metrics.CheckRunOpsInc(operationLabelCompleteVal)
	logger.Info("check run completed, merge gate passed", logEventCheckRunCompleted)

	return nil
}

// findCheckRun returns the first check run named cfg.CheckRunName of the
// commit headSHA. If none exists, nil is returned.
func (t *Tide) findCheckRun(ctx context.Context, repo *Repository, headSHA string) (*githubclt.CheckRun, error) {
	runs, err := t.ghClient.ListCheckRuns(ctx, repo.Owner, repo.RepositoryName, headSHA, t.cfg.CheckRunName)
	if err != nil {
		return nil, fmt.Errorf("listing check runs failed: %w", err)
	}

	for _, cr := range runs {
		if cr.Name == t.cfg.CheckRunName {
			return cr, nil
		}
	}

	return nil, nil
}

func (t *Tide) createCheckRun(ctx context.Context, logger *zap.Logger, repo *Repository, headSHA string) (int64, error) {
	id, err := t.ghClient.CreateCheckRun(ctx, repo.Owner, repo.RepositoryName, t.cfg.CheckRunName, headSHA, githubclt.CheckRunStatusInProgress)
	if err != nil {
		return 0, fmt.Errorf("creating check run failed: %w", err)
	}

	metrics.CheckRunOpsInc(operationLabelCreateVal)
	logger.Info(
		"check run created",
		logEventCheckRunCreated,
		logfields.CheckRunID(id),
	)

	return id, nil
}
