package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	testcases := []struct {
		name             string
		labels           []string
		expectedPass     bool
		expectedMissing  []string
		expectedBlocking []string
	}{
		{
			name:         "requiredLabelsPresent",
			labels:       []string{"lgtm", "approved"},
			expectedPass: true,
		},
		{
			name:         "additionalLabels",
			labels:       []string{"kind/bug", "approved", "lgtm", "size/XS"},
			expectedPass: true,
		},
		{
			name:            "lgtmMissing",
			labels:          []string{"approved"},
			expectedMissing: []string{"lgtm"},
		},
		{
			name:            "approvedMissing",
			labels:          []string{"lgtm"},
			expectedMissing: []string{"approved"},
		},
		{
			name:             "hold",
			labels:           []string{"lgtm", "approved", "do-not-merge/hold"},
			expectedBlocking: []string{"do-not-merge/hold"},
		},
		{
			name:             "noLabelsWithHold",
			labels:           []string{"do-not-merge/hold"},
			expectedMissing:  []string{"lgtm", "approved"},
			expectedBlocking: []string{"do-not-merge/hold"},
		},
		{
			name:            "empty",
			labels:          nil,
			expectedMissing: []string{"lgtm", "approved"},
		},
		{
			name:         "duplicateLabels",
			labels:       []string{"lgtm", "lgtm", "approved"},
			expectedPass: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Evaluate(DefaultRules(), tc.labels)

			assert.Equal(t, tc.expectedPass, verdict.Pass())
			assert.Equal(t, tc.expectedMissing, verdict.Missing())
			assert.Equal(t, tc.expectedBlocking, verdict.Blocking())
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	labelSets := [][]string{
		nil,
		{"lgtm"},
		{"lgtm", "approved"},
		{"lgtm", "approved", "do-not-merge/hold"},
		{"approved", "kind/bug"},
	}

	for _, labels := range labelSets {
		first := Evaluate(DefaultRules(), labels)
		second := Evaluate(DefaultRules(), labels)

		assert.Equal(t, first, second)
		assert.Equal(t, first.Pass(), second.Pass())
	}
}

func TestVerdictFlipsOnLabelChanges(t *testing.T) {
	passing := []string{"lgtm", "approved"}
	assert.True(t, Evaluate(DefaultRules(), passing).Pass())

	for i := range passing {
		removed := append(append([]string{}, passing[:i]...), passing[i+1:]...)
		assert.Falsef(t, Evaluate(DefaultRules(), removed).Pass(), "gate passes without %q", passing[i])
	}

	held := append(append([]string{}, passing...), "do-not-merge/hold")
	assert.False(t, Evaluate(DefaultRules(), held).Pass())
}

func TestEvaluateEmptyRulesPass(t *testing.T) {
	assert.True(t, Evaluate(nil, []string{"do-not-merge/hold"}).Pass())
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "pass", Evaluate(DefaultRules(), []string{"lgtm", "approved"}).String())
	assert.Equal(t,
		"fail (missing: approved; blocking: do-not-merge/hold)",
		Evaluate(DefaultRules(), []string{"lgtm", "do-not-merge/hold"}).String(),
	)
}
