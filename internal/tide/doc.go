// Package tide implements a label based merge gate for GitHub pull requests.
//
// Reviewers and approvers add labels to pull requests by writing
// slash-commands in comments (/lgtm, /approve, /hold, /kind <kind>).
// Privileged labels are only applied if the comment author is listed in the
// OWNERS file of the repository.
//
// Every pull request gets one check run named "tide" for its head commit.
// When the labels of a pull request change, the gate rules are evaluated
// against the current label set. If they are fulfilled the check run is
// completed successfully.
// When all check runs of a commit are completed, the pull requests of the
// commit are merged.
//
// Tide keeps no state between events, everything is read from GitHub when an
// event is processed.
package tide
