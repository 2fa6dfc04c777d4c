package command

import (
	"fmt"
	"sort"
	"strings"
)

// Table maps canonical commands to the names of the labels they add.
// A Table is immutable, the mapping is injective.
type Table struct {
	labels map[string]string
}

// DefaultTable returns the command table used by tidegate.
func DefaultTable() *Table {
	t, err := NewTable(map[string]string{
		"lgtm":               "lgtm",
		"approve":            "approved",
		"hold":               "do-not-merge/hold",
		"kind/bug":           "kind/bug",
		"kind/feature":       "kind/feature",
		"kind/documentation": "kind/documentation",
	})
	if err != nil {
		panic(err)
	}

	return t
}

// NewTable creates a Table from a command to label name mapping.
// An error is returned when a command or label is empty or multiple commands
// map to the same label.
func NewTable(commandToLabel map[string]string) (*Table, error) {
	labels := make(map[string]string, len(commandToLabel))
	seen := make(map[string]string, len(commandToLabel))

	for cmd, label := range commandToLabel {
		if cmd == "" {
			return nil, fmt.Errorf("command for label %q is empty", label)
		}

		if label == "" {
			return nil, fmt.Errorf("label for command %q is empty", cmd)
		}

		if other, exist := seen[label]; exist {
			return nil, fmt.Errorf("commands %q and %q map to the same label %q", other, cmd, label)
		}

		seen[label] = cmd
		labels[cmd] = label
	}

	return &Table{labels: labels}, nil
}

// Label returns the label name for cmd.
func (t *Table) Label(cmd string) (string, bool) {
	label, ok := t.labels[cmd]
	return label, ok
}

// Labels maps commands to label names. Commands without a mapping are
// skipped. The order of cmds is kept.
func (t *Table) Labels(cmds []string) []string {
	result := make([]string, 0, len(cmds))

	for _, cmd := range cmds {
		if label, ok := t.labels[cmd]; ok {
			result = append(result, label)
		}
	}

	return result
}

func (t *Table) String() string {
	cmds := make([]string, 0, len(t.labels))
	for cmd := range t.labels {
		cmds = append(cmds, cmd)
	}

	sort.Strings(cmds)

	var result strings.Builder
	for i, cmd := range cmds {
		if i > 0 {
			result.WriteString(", ")
		}

		fmt.Fprintf(&result, "/%s -> %s", cmd, t.labels[cmd])
	}

	return result.String()
}
