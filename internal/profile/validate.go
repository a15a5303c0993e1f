package profile

import (
	"fmt"
	"regexp"
)

const maxNameLen = 64

var nameRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// InvalidNameError reports a profile name that cannot name a directory
// under the convo home.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid profile name %q: %s", e.Name, e.Reason)
}

// ValidateName checks that name is 1 to 64 lowercase letters, digits,
// hyphens or underscores, starting with a letter or digit so it is never
// read as a flag.
func ValidateName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Name: name, Reason: "empty"}
	case len(name) > maxNameLen:
		return &InvalidNameError{Name: name, Reason: fmt.Sprintf("longer than %d characters", maxNameLen)}
	case !nameRegexp.MatchString(name):
		return &InvalidNameError{Name: name, Reason: "want lowercase letters, digits, '-' or '_', starting with a letter or digit"}
	}
	return nil
}
