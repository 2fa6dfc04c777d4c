package tide

import "errors"

// ErrEventIgnored is returned for webhook events that tide does not act on.
var ErrEventIgnored = errors.New("event ignored")

// ErrMissingField is returned when a required field of an event is empty.
var ErrMissingField = errors.New("required event field is missing")
