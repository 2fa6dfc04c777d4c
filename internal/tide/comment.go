package tide

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/tidegate/internal/command"
	"github.com/simplesurance/tidegate/internal/logfields"
	"github.com/simplesurance/tidegate/internal/owners"
)

// GreetIssue posts the issue greeting as comment.
func (t *Tide) GreetIssue(ctx context.Context, ev *IssueOpenedEvent) error {
	return t.greetIssue(ctx, t.logger.With(ev.LogFields()...), ev)
}

func (t *Tide) greetIssue(ctx context.Context, logger *zap.Logger, ev *IssueOpenedEvent) error {
	return t.postGreeting(ctx, logger, &ev.Repository, ev.IssueNumber, t.cfg.IssueGreeting)
}

func (t *Tide) postGreeting(ctx context.Context, logger *zap.Logger, repo *Repository, number int, greeting string) error {
	if greeting == "" {
		return nil
	}

	if err := t.ghClient.CreateIssueComment(ctx, repo.Owner, repo.RepositoryName, number, greeting); err != nil {
		return fmt.Errorf("creating greeting comment failed: %w", err)
	}

	logger.Debug("greeting comment created", logEventCommentCreated)

	return nil
}

func (t *Tide) isOwnComment(ev *CommentEvent) bool {
	if ev.AuthorIsBot {
		return true
	}

	return t.cfg.BotLogin != "" && strings.EqualFold(ev.Author, t.cfg.BotLogin)
}

// ProcessComment interprets the slash commands in the comment and adds the
// labels that the commands map to and that the author is allowed to set.
// The authorization policy is read from the base branch of the pull
// request. If it can not be retrieved or parsed no label is added.
// Comments authored by bots are ignored.
func (t *Tide) ProcessComment(ctx context.Context, ev *CommentEvent) error {
	return t.processComment(ctx, t.logger.With(ev.LogFields()...), ev)
}

func (t *Tide) processComment(ctx context.Context, logger *zap.Logger, ev *CommentEvent) error {
	if t.isOwnComment(ev) {
		logger.Debug("ignoring comment", logEventEventIgnored, logReasonBotComment)
		return nil
	}

	cmds := command.Parse(ev.Body)
	labels := t.cfg.Commands.Labels(cmds)
	if len(labels) == 0 {
		logger.Debug(
			"comment contains no known commands",
			logEventCommandsNotMatched,
			zap.Strings("commands", cmds),
		)
		return nil
	}

	policy, err := t.loadPolicy(ctx, logger, &ev.Repository, ev.PullRequestNumber)
	if err != nil {
		logger.Info(
			"loading authorization policy failed, comment is not processed",
			logEventPolicyLoadFailed,
			zap.Error(err),
		)
		return err
	}

	allowed, denied := t.cfg.Gates.Authorize(policy.Capabilities(ev.Author), labels)
	if len(denied) > 0 {
		metrics.DeniedLabelsInc(denied)
		logger.Info(
			"author is not permitted to set labels",
			logEventLabelsDenied,
			logfields.Labels(denied),
		)
	}

	if len(allowed) == 0 {
		return nil
	}

	err = t.ghClient.AddLabels(ctx, ev.Owner, ev.RepositoryName, ev.PullRequestNumber, allowed)
	if err != nil {
		return fmt.Errorf("adding labels failed: %w", err)
	}

	logger.Info("labels added", logEventLabelsAdded, logfields.Labels(allowed))

	return nil
}

func (t *Tide) loadPolicy(ctx context.Context, logger *zap.Logger, repo *Repository, prNumber int) (*owners.Policy, error) {
	baseRef, err := t.ghClient.PullRequestBaseRef(ctx, repo.Owner, repo.RepositoryName, prNumber)
	if err != nil {
		return nil, fmt.Errorf("retrieving base branch failed: %w", err)
	}

	data, err := t.ghClient.FileContent(ctx, repo.Owner, repo.RepositoryName, t.cfg.OwnersFile, baseRef)
	if err != nil {
		return nil, fmt.Errorf("retrieving %s from branch %s failed: %w", t.cfg.OwnersFile, baseRef, err)
	}

	policy, err := owners.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s from branch %s failed: %w", t.cfg.OwnersFile, baseRef, err)
	}

	logger.Debug(
		"authorization policy loaded",
		logEventPolicyLoaded,
		logfields.BaseBranch(baseRef),
		zap.String("policy_file", t.cfg.OwnersFile),
	)

	return policy, nil
}
