// Package owners implements the authorization policy that restricts which
// actors can apply privileged labels.
//
// The policy is read from an OWNERS file in the repository:
//
//	approvers:
//	  - alice
//	reviewers:
//	  - bob
package owners

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedPolicy is returned when a policy document can not be parsed.
var ErrMalformedPolicy = errors.New("malformed policy document")

// Policy lists the logins of approvers and reviewers of a repository.
// Logins are stored lower-cased.
type Policy struct {
	approvers map[string]struct{}
	reviewers map[string]struct{}
}

type policyDocument struct {
	Approvers []string `yaml:"approvers"`
	Reviewers []string `yaml:"reviewers"`
}

// Capabilities are the permissions an actor has according to a Policy.
type Capabilities struct {
	IsApprover bool
	IsReviewer bool
}

// Parse parses a YAML policy document.
// Unknown keys are ignored. An empty document or a document that is not a
// YAML mapping is malformed.
func Parse(data []byte) (*Policy, error) {
	var doc policyDocument

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrMalformedPolicy)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPolicy, err)
	}

	return NewPolicy(doc.Approvers, doc.Reviewers), nil
}

// NewPolicy creates a Policy from lists of logins.
func NewPolicy(approvers, reviewers []string) *Policy {
	return &Policy{
		approvers: toLoginSet(approvers),
		reviewers: toLoginSet(reviewers),
	}
}

func toLoginSet(logins []string) map[string]struct{} {
	result := make(map[string]struct{}, len(logins))

	for _, login := range logins {
		login = normalizeLogin(login)
		if login == "" {
			continue
		}

		result[login] = struct{}{}
	}

	return result
}

func normalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

// Capabilities returns the capabilities of the actor with the given login.
// Approvers are also reviewers.
func (p *Policy) Capabilities(login string) Capabilities {
	login = normalizeLogin(login)

	_, isApprover := p.approvers[login]
	_, isReviewer := p.reviewers[login]

	return Capabilities{
		IsApprover: isApprover,
		IsReviewer: isApprover || isReviewer,
	}
}
