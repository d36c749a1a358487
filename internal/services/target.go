package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/xerolinux/xfprintd-gui/internal/i18n"
)

// Target is one policy file to operate on.
type Target struct {
	// File is the live file to patch. It must pass the allowlist before any mutation.
	File string `json:"file"`
	// Default is an optional template used as initial content when File does not exist.
	// It is only ever read.
	Default string `json:"default,omitempty"`
}

// String returns the file of the target.
func (t Target) String() string {
	return t.File
}

// ParseTarget parses a target given on the command line. arg is, by order of precedence:
//   - a JSON object like {"file":"/etc/pam.d/polkit-1","default":"/usr/lib/pam.d/polkit-1"},
//   - a known service name like "sudo",
//   - a file path, taken verbatim.
func ParseTarget(arg string) (Target, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return Target{}, errors.New(i18n.G("empty target"))
	}

	if strings.HasPrefix(trimmed, "{") {
		var t Target
		dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&t); err != nil {
			return Target{}, errors.New(i18n.G("invalid target %q: %v", arg, err))
		}
		if dec.More() {
			return Target{}, errors.New(i18n.G("invalid target %q: trailing data", arg))
		}
		if t.File == "" {
			return Target{}, errors.New(i18n.G("invalid target %q: missing file", arg))
		}
		return t, nil
	}

	if s, ok := FromName(trimmed); ok {
		return s.Target(), nil
	}

	return Target{File: arg}, nil
}
