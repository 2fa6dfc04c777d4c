package tide

import (
	"github.com/simplesurance/tidegate/internal/command"
	"github.com/simplesurance/tidegate/internal/gate"
	"github.com/simplesurance/tidegate/internal/githubclt"
	"github.com/simplesurance/tidegate/internal/owners"
)

const (
	DefCheckRunName = "tide"
	DefOwnersFile   = "OWNERS"
	DefMergeMethod  = "rebase"
)

// Config contains the settings and rule tables of Tide.
type Config struct {
	// Labels is the label catalog that is created in repositories when
	// the app is installed.
	Labels   []githubclt.Label
	Commands *command.Table
	Gates    owners.Gates
	Rules    gate.Rules

	CheckRunName string
	// OwnersFile is the path of the policy document in the repository.
	OwnersFile  string
	MergeMethod string
	// BotLogin is the login of the identity tide acts as, comments
	// authored by it are ignored.
	BotLogin string
	// IssueGreeting is posted as comment on new issues, an empty
	// string disables it.
	IssueGreeting string
	// PullRequestGreeting is posted as comment on new pull requests, an
	// empty string disables it.
	PullRequestGreeting string
}

// DefaultConfig returns a Config with the default tables and settings.
// BotLogin and the greetings are empty.
func DefaultConfig() Config {
	return Config{
		Labels:       DefaultLabels(),
		Commands:     command.DefaultTable(),
		Gates:        owners.DefaultGates(),
		Rules:        gate.DefaultRules(),
		CheckRunName: DefCheckRunName,
		OwnersFile:   DefOwnersFile,
		MergeMethod:  DefMergeMethod,
	}
}

// DefaultLabels returns the label catalog.
func DefaultLabels() []githubclt.Label {
	return []githubclt.Label{
		{
			Name:        "lgtm",
			Color:       "15DD18",
			Description: "Indicates that a PR is ready to be merged.",
		},
		{
			Name:        "approved",
			Color:       "0FFA16",
			Description: "Indicates a PR has been approved by an approver from all required OWNERS files.",
		},
		{
			Name:        "kind/bug",
			Color:       "D73A4A",
			Description: "Categorizes issue or PR as related to a bug.",
		},
		{
			Name:        "kind/feature",
			Color:       "C7DEF8",
			Description: "Categorizes issue or PR as related to a new feature.",
		},
		{
			Name:        "kind/documentation",
			Color:       "C7DEF8",
			Description: "Categorizes issue or PR as related to documentation.",
		},
		{
			Name:        "do-not-merge/hold",
			Color:       "D73A4A",
			Description: "Indicates that a PR should not merge because someone has issued a /hold command.",
		},
	}
}
