package assets

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var localeFS embed.FS

// DefaultLanguage is the language of the shipped dataset.
const DefaultLanguage = "pt_BR"

// Translator looks up UI strings in an embedded gettext catalogue.
type Translator struct {
	lang string
	po   *gotext.Po
}

// NewTranslator loads the catalogue for lang. An unknown language returns an
// error together with a translator that echoes the English msgids.
func NewTranslator(lang string) (*Translator, error) {
	t := &Translator{lang: lang, po: gotext.NewPo()}
	data, err := localeFS.ReadFile(path.Join("locales", lang+".po"))
	if err != nil {
		return t, fmt.Errorf("language %q (have %s): %w", lang, strings.Join(Languages(), ", "), ErrNoAsset)
	}
	t.po.Parse(data)
	return t, nil
}

// Lang returns the catalogue's language code.
func (t *Translator) Lang() string { return t.lang }

// Get translates msgid and formats it with vars.
func (t *Translator) Get(msgid string, vars ...interface{}) string {
	return t.po.Get(msgid, vars...)
}

// Languages lists the embedded catalogues.
func Languages() []string {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".po"))
	}
	sort.Strings(langs)
	return langs
}
