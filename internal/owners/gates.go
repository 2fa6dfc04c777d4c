package owners

// Requirement is the capability an actor needs to apply a label.
type Requirement uint8

const (
	RequireNothing Requirement = iota
	RequireReviewer
	RequireApprover
)

func (r Requirement) String() string {
	switch r {
	case RequireNothing:
		return "none"
	case RequireReviewer:
		return "reviewer"
	case RequireApprover:
		return "approver"
	default:
		return "unknown"
	}
}

func (r Requirement) satisfiedBy(c Capabilities) bool {
	switch r {
	case RequireNothing:
		return true
	case RequireReviewer:
		return c.IsReviewer
	case RequireApprover:
		return c.IsApprover
	default:
		return false
	}
}

// Gates maps privileged label names to the capability required to apply
// them. Labels that are not in the map are unprivileged.
type Gates map[string]Requirement

// DefaultGates returns the gates for the approved and lgtm labels.
func DefaultGates() Gates {
	return Gates{
		"approved": RequireApprover,
		"lgtm":     RequireReviewer,
	}
}

// Authorize returns the labels from labels that an actor with caps is
// allowed to apply, and the ones that were denied.
// Duplicates are removed, the order of first occurrence is kept.
func (g Gates) Authorize(caps Capabilities, labels []string) (allowed, denied []string) {
	seen := make(map[string]struct{}, len(labels))

	for _, label := range labels {
		if _, exist := seen[label]; exist {
			continue
		}

		seen[label] = struct{}{}

		if g[label].satisfiedBy(caps) {
			allowed = append(allowed, label)
			continue
		}

		denied = append(denied, label)
	}

	return allowed, denied
}
