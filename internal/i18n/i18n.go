// Package i18n is the package responsible for internationalization of the helper messages.
//
// Status words parsed by callers (Success, Error, applied, not-applied) must never go through it.
package i18n

import (
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

const defaultLocaleDir = "/usr/share/locale"

type options struct {
	localeDir string
	loc       string
}

// Option allows to customize the i18n initialization.
type Option func(*options)

// WithLocaleDir overrides the directory where translations are looked up.
func WithLocaleDir(dir string) Option {
	return func(o *options) {
		o.localeDir = dir
	}
}

// WithLoc forces the locale to use instead of the environment ones.
func WithLoc(loc string) Option {
	return func(o *options) {
		o.loc = loc
	}
}

// InitI18nDomain calls gotext configuration for the given domain.
func InitI18nDomain(domain string, opts ...Option) {
	o := options{
		localeDir: defaultLocaleDir,
	}
	for _, opt := range opts {
		opt(&o)
	}

	loc := o.loc
	if loc == "" {
		loc = localeFromEnv()
	}

	gotext.Configure(o.localeDir, normalizeLoc(loc), domain)
}

// G returns the translated string, formatted with args if any.
func G(msgid string, args ...interface{}) string {
	return gotext.Get(msgid, args...)
}

// NG returns the translated singular or plural string depending on n, formatted with args if any.
func NG(msgid, msgidPlural string, n int, args ...interface{}) string {
	return gotext.GetN(msgid, msgidPlural, n, args...)
}

// localeFromEnv follows the gettext priority order.
func localeFromEnv() string {
	for _, k := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(k)
		if v == "" {
			continue
		}
		// LANGUAGE can be a colon separated list of preferences.
		return strings.Split(v, ":")[0]
	}
	return ""
}

// normalizeLoc strips encoding and modifier: en_DK.UTF-8@euro is en_DK.
func normalizeLoc(loc string) string {
	if i := strings.IndexAny(loc, ".@"); i >= 0 {
		loc = loc[:i]
	}
	return loc
}
