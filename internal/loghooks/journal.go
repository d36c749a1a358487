// Package loghooks contains logrus hooks forwarding entries to other log sinks.
package loghooks

import (
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/sirupsen/logrus"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
)

// fieldPrefix namespaces the entry fields in the journal.
const fieldPrefix = "XFPRINTD_"

// Journal sends logs to the systemd journal.
// Entry fields, like the target being patched, are kept as journal fields.
type Journal struct {
	send func(message string, priority journal.Priority, vars map[string]string) error
}

// NewJournal returns a hook sending to the local systemd journal.
func NewJournal() *Journal {
	return &Journal{send: journal.Send}
}

// Levels returns the levels forwarded to the journal.
func (hook *Journal) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire is called when an event should be logged.
func (hook *Journal) Fire(entry *logrus.Entry) error {
	vars := map[string]string{"SYSLOG_IDENTIFIER": consts.CmdName}
	for k, v := range entry.Data {
		vars[fieldName(k)] = fmt.Sprint(v)
	}

	return hook.send(entry.Message, priority(entry.Level), vars)
}

func priority(level logrus.Level) journal.Priority {
	switch level {
	case logrus.PanicLevel:
		return journal.PriEmerg
	case logrus.FatalLevel:
		return journal.PriCrit
	case logrus.ErrorLevel:
		return journal.PriErr
	case logrus.WarnLevel:
		return journal.PriWarning
	case logrus.InfoLevel:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// fieldName converts a logrus key to a journal field name: uppercase letters, digits and underscores.
func fieldName(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)
	return fieldPrefix + name
}

