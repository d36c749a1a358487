package i18n_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
)

const (
	defaultDomain = "xfprintd-gui-test"
	defaultLoc    = "en_DK"
)

const defaultPo = `msgid ""
msgstr ""
"Project-Id-Version: xfprintd-gui-test\n"
"Language: en_DK\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

msgid "singular"
msgstr "translated singular"
`

func TestTranslations(t *testing.T) {
	// gotext keeps its configuration in globals: no parallel subtests.
	localeDir := filepath.Join(t.TempDir(), "locale")
	poDir := filepath.Join(localeDir, defaultLoc, "LC_MESSAGES")
	require.NoError(t, os.MkdirAll(poDir, 0750), "Setup: can't create locale dir")
	require.NoError(t, os.WriteFile(filepath.Join(poDir, defaultDomain+".po"), []byte(defaultPo), 0600), "Setup: can't write po file")

	tests := map[string]struct {
		text   string
		loc    string
		domain string

		want string
	}{
		"Translated text":                   {text: "singular", want: "translated singular"},
		"Locale with encoding is the same":  {text: "singular", loc: defaultLoc + ".UTF-8", want: "translated singular"},
		"Locale with modifier is the same":  {text: "singular", loc: defaultLoc + "@euro", want: "translated singular"},
		"Untranslated text is returned raw": {text: "untranslated", want: "untranslated"},
		"Missing locale returns raw text":   {text: "singular", loc: "doesnotexist", want: "singular"},
		"Missing domain returns raw text":   {text: "singular", domain: "doesnotexist", want: "singular"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.loc == "" {
				tc.loc = defaultLoc
			}
			if tc.domain == "" {
				tc.domain = defaultDomain
			}

			i18n.InitI18nDomain(tc.domain, i18n.WithLocaleDir(localeDir), i18n.WithLoc(tc.loc))
			assert.Equal(t, tc.want, i18n.G(tc.text), "G returns expected text")
		})
	}
}

func TestGFormatsArguments(t *testing.T) {
	i18n.InitI18nDomain("doesnotexist", i18n.WithLocaleDir(t.TempDir()), i18n.WithLoc("C"))
	require.Equal(t, "can't apply to /etc/pam.d/sudo", i18n.G("can't apply to %s", "/etc/pam.d/sudo"), "G formats its arguments")
	require.Equal(t, "2 targets", i18n.NG("%d target", "%d targets", 2, 2), "NG picks the plural form and formats")
}

func TestNormalizeLoc(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		loc  string
		want string
	}{
		"Plain locale":         {loc: "fr_FR", want: "fr_FR"},
		"Encoding is stripped": {loc: "fr_FR.UTF-8", want: "fr_FR"},
		"Modifier is stripped": {loc: "fr_FR@euro", want: "fr_FR"},
		"Both are stripped":    {loc: "fr_FR.UTF-8@euro", want: "fr_FR"},
		"Empty stays empty":    {loc: "", want: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, i18n.NormalizeLoc(tc.loc), "normalizeLoc returns expected locale")
		})
	}
}
