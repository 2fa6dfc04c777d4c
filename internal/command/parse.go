// Package command interprets slash-commands in pull request comments.
package command

import "strings"

const kindVerb = "kind"

// Parse returns the canonical commands contained in text.
//
// A line is a command when its first character is a '/'. The text after the
// slash is split on spaces, the first token is the verb and the second the
// argument, further tokens are ignored. For the kind verb with an argument
// the canonical command is "kind/<argument>", otherwise it is the verb.
// Commands are returned in the order they appear, duplicates are kept.
func Parse(text string) []string {
	var result []string

	for _, line := range strings.Split(text, "\n") {
		if cmd, ok := parseLine(line); ok {
			result = append(result, cmd)
		}
	}

	return result
}

func parseLine(line string) (string, bool) {
	line = strings.ReplaceAll(line, "\r", "")

	if !strings.HasPrefix(line, "/") {
		return "", false
	}

	verb, rest, _ := strings.Cut(line[1:], " ")
	if verb == "" {
		return "", false
	}

	arg, _, _ := strings.Cut(rest, " ")
	if verb == kindVerb && arg != "" {
		return kindVerb + "/" + arg, true
	}

	return verb, true
}
