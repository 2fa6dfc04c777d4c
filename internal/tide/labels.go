package tide

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/tidegate/internal/githubclt"
	"github.com/simplesurance/tidegate/internal/logfields"
)

// BootstrapLabels creates the labels of the label catalog that do not exist
// in the repositories of owner.
func (t *Tide) BootstrapLabels(ctx context.Context, owner string, repositories []string) error {
	return t.bootstrapLabels(ctx, t.logger.With(logfields.RepositoryOwner(owner)), owner, repositories)
}

func (t *Tide) bootstrapLabels(ctx context.Context, logger *zap.Logger, owner string, repositories []string) error {
	return runAll(repositories, func(repo string) error {
		return t.createMissingLabels(ctx, logger.With(logfields.Repository(repo)), owner, repo)
	})
}

func (t *Tide) createMissingLabels(ctx context.Context, logger *zap.Logger, owner, repo string) error {
	existing, err := t.ghClient.ListLabels(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("listing labels of %s/%s failed: %w", owner, repo, err)
	}

	existingSet := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		existingSet[name] = struct{}{}
	}

	var missing []*githubclt.Label
	for i := range t.cfg.Labels {
		if _, exists := existingSet[t.cfg.Labels[i].Name]; exists {
			continue
		}

		missing = append(missing, &t.cfg.Labels[i])
	}

	return runAll(missing, func(label *githubclt.Label) error {
		if err := t.ghClient.CreateLabel(ctx, owner, repo, label); err != nil {
			return fmt.Errorf("creating label %q in %s/%s failed: %w", label.Name, owner, repo, err)
		}

		logger.Info(
			"label created",
			logEventLabelCreated,
			logfields.Label(label.Name),
		)

		return nil
	})
}
