package tide

import (
	"go.uber.org/zap"

	"github.com/simplesurance/tidegate/internal/logfields"
)

var (
	logEventEventIgnored       = logfields.Event("github_event_ignored")
	logEventEventProcessed     = logfields.Event("github_event_processed")
	logEventProcessingFailed   = logfields.Event("github_event_processing_failed")
	logEventLabelCreated       = logfields.Event("github_label_created")
	logEventCommentCreated     = logfields.Event("github_comment_created")
	logEventLabelsAdded        = logfields.Event("github_labels_added")
	logEventLabelsDenied       = logfields.Event("github_labels_denied")
	logEventCheckRunCreated    = logfields.Event("check_run_created")
	logEventCheckRunRestarted  = logfields.Event("check_run_restarted")
	logEventCheckRunCompleted  = logfields.Event("check_run_completed")
	logEventGateEvaluated      = logfields.Event("gate_evaluated")
	logEventChecksIncomplete   = logfields.Event("checks_incomplete")
	logEventMerged             = logfields.Event("pull_request_merged")
	logEventMergeFailed        = logfields.Event("pull_request_merge_failed")
	logEventPolicyLoadFailed   = logfields.Event("policy_load_failed")
	logEventPolicyLoaded       = logfields.Event("policy_loaded")
	logEventCommandsNotMatched = logfields.Event("commands_not_matched")

	logReasonBotComment = logFieldReason("bot_comment")
)

func logFieldReason(reason string) zap.Field {
	return zap.String("reason", reason)
}
