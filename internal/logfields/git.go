package logfields

import "go.uber.org/zap"

func PullRequest(val int) zap.Field {
	return zap.Int("github.pull_request", val)
}

func PullRequests(val []int) zap.Field {
	return zap.Ints("github.pull_requests", val)
}

func Repository(val string) zap.Field {
	return zap.String("git.repository", val)
}

func RepositoryOwner(val string) zap.Field {
	return zap.String("github.repository_owner", val)
}

func BaseBranch(val string) zap.Field {
	return zap.String("git.base_branch", val)
}

func Branch(val string) zap.Field {
	return zap.String("git.branch", val)
}

func Commit(val string) zap.Field {
	return zap.String("git.commit", val)
}

func Label(val string) zap.Field {
	return zap.String("github.label", val)
}

func Labels(val []string) zap.Field {
	return zap.Strings("github.labels", val)
}

func CheckRunID(val int64) zap.Field {
	return zap.Int64("github.check_run_id", val)
}

func Actor(val string) zap.Field {
	return zap.String("github.actor", val)
}
