package tide

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	github_prov "github.com/simplesurance/tidegate/internal/provider/github"
)

const loggerName = "tide"

// Tide runs the label merge gate workflow for GitHub webhook events.
// It does not keep state between events, every handler reads the current
// labels, check runs and policy document from GitHub.
type Tide struct {
	cfg      Config
	ghClient GithubClient
	logger   *zap.Logger
	now      func() time.Time
}

// New returns a Tide instance.
func New(ghClient GithubClient, cfg Config) *Tide {
	return &Tide{
		cfg:      cfg,
		ghClient: ghClient,
		logger:   zap.L().Named(loggerName),
		now:      time.Now,
	}
}

// Handle converts the webhook event to an Event and runs the handler for it.
// Events that are not of interest are logged and nil is returned.
func (t *Tide) Handle(ctx context.Context, ev *github_prov.Event) error {
	logger := t.logger.With(ev.LogFields...)

	tev, err := EventFromWebhook(ev.Event)
	if err != nil {
		if errors.Is(err, ErrEventIgnored) {
			logger.Debug(
				"ignoring event",
				logEventEventIgnored,
				zap.Error(err),
			)
			return nil
		}

		metrics.ProcessedEventsInc(ev.Type, err)
		return err
	}

	logger = logger.With(tev.LogFields()...)

	err = t.dispatch(ctx, logger, tev)
	metrics.ProcessedEventsInc(tev.Name(), err)
	if err != nil {
		logger.Debug(
			"processing event failed",
			logEventProcessingFailed,
			zap.String("github.event", tev.Name()),
			zap.Error(err),
		)

		return fmt.Errorf("processing %s event failed: %w", tev.Name(), err)
	}

	logger.Debug(
		"event processed",
		logEventEventProcessed,
		zap.String("github.event", tev.Name()),
	)

	return nil
}

func (t *Tide) dispatch(ctx context.Context, logger *zap.Logger, ev Event) error {
	switch ev := ev.(type) {
	case *InstallationCreatedEvent:
		return t.bootstrapLabels(ctx, logger, ev.Account, ev.Repositories)

	case *RepositoriesAddedEvent:
		return t.bootstrapLabels(ctx, logger, ev.Account, ev.Repositories)

	case *IssueOpenedEvent:
		return t.greetIssue(ctx, logger, ev)

	case *PullRequestOpenedEvent:
		return t.armCheckRun(ctx, logger, ev)

	case *CommentEvent:
		return t.processComment(ctx, logger, ev)

	case *LabelsChangedEvent:
		return t.syncCheckRun(ctx, logger, ev)

	case *CheckSuiteCompletedEvent:
		return t.mergeIfComplete(ctx, logger, ev)

	default:
		logger.DPanic("dispatch called with unsupported event type", zap.String("type", fmt.Sprintf("%T", ev)))
		return fmt.Errorf("%w: unsupported event type %T", ErrEventIgnored, ev)
	}
}
