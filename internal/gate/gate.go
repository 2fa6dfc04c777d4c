// Package gate evaluates the label set of a pull request against the rules
// that must be fulfilled before it can be merged.
package gate

import (
	"fmt"
	"strings"
)

// Condition is the requirement a Rule states for its label.
type Condition uint8

const (
	MustExist Condition = iota + 1
	MustNotExist
)

func (c Condition) String() string {
	switch c {
	case MustExist:
		return "must exist"
	case MustNotExist:
		return "must not exist"
	default:
		return fmt.Sprintf("unsupported condition: %d", c)
	}
}

// Rule is a requirement for a single label.
type Rule struct {
	Label     string
	Condition Condition
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s", r.Label, r.Condition)
}

// Rules is a set of rules that are evaluated together.
type Rules []Rule

// DefaultRules requires the lgtm and approved labels and forbids the
// do-not-merge/hold label.
func DefaultRules() Rules {
	return Rules{
		{Label: "lgtm", Condition: MustExist},
		{Label: "approved", Condition: MustExist},
		{Label: "do-not-merge/hold", Condition: MustNotExist},
	}
}

func (rr Rules) String() string {
	var result strings.Builder

	for i, r := range rr {
		if i > 0 {
			result.WriteString(", ")
		}
		result.WriteString(r.String())
	}

	return result.String()
}

// RuleState is the evaluation result of one rule.
// Present is true when the label of the rule is in the evaluated label set:
// for MustExist rules this means the rule is satisfied, for MustNotExist rules
// that it is violated.
type RuleState struct {
	Rule    Rule
	Present bool
}

// Satisfied returns true if the rule is fulfilled.
func (s *RuleState) Satisfied() bool {
	if s.Rule.Condition == MustNotExist {
		return !s.Present
	}

	return s.Present
}

// Verdict is the result of evaluating Rules against a label set.
type Verdict struct {
	States []RuleState
}

// Pass returns true when all MustExist labels are present and no
// MustNotExist label is.
func (v *Verdict) Pass() bool {
	for i := range v.States {
		if !v.States[i].Satisfied() {
			return false
		}
	}

	return true
}

// Missing returns the labels of unsatisfied MustExist rules.
func (v *Verdict) Missing() []string {
	return v.unsatisfied(MustExist)
}

// Blocking returns the labels of violated MustNotExist rules.
func (v *Verdict) Blocking() []string {
	return v.unsatisfied(MustNotExist)
}

func (v *Verdict) unsatisfied(cond Condition) []string {
	var result []string

	for i := range v.States {
		if v.States[i].Rule.Condition == cond && !v.States[i].Satisfied() {
			result = append(result, v.States[i].Rule.Label)
		}
	}

	return result
}

func (v *Verdict) String() string {
	if v.Pass() {
		return "pass"
	}

	var reasons []string
	if missing := v.Missing(); len(missing) > 0 {
		reasons = append(reasons, "missing: "+strings.Join(missing, ", "))
	}

	if blocking := v.Blocking(); len(blocking) > 0 {
		reasons = append(reasons, "blocking: "+strings.Join(blocking, ", "))
	}

	return "fail (" + strings.Join(reasons, "; ") + ")"
}

// Evaluate evaluates rules against the label names of a pull request.
// It does not depend on any state besides its arguments.
func Evaluate(rules Rules, labels []string) *Verdict {
	states := make([]RuleState, len(rules))
	idx := make(map[string][]int, len(rules))

	for i, r := range rules {
		states[i] = RuleState{Rule: r}
		idx[r.Label] = append(idx[r.Label], i)
	}

	for _, label := range labels {
		for _, i := range idx[label] {
			states[i].Present = true
		}
	}

	return &Verdict{States: states}
}
