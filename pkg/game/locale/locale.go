// Package locale holds the user-facing strings, stored as an embedded
// gettext catalog and looked up by message key.
package locale

import (
	_ "embed"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed en.po
var defaultCatalog []byte

var (
	once sync.Once
	po   *gotext.Po
)

func catalog() *gotext.Po {
	once.Do(func() {
		po = gotext.NewPo()
		po.Parse(defaultCatalog)
	})
	return po
}

// Get returns the translation for key with its format verbs intact;
// callers fill them with fmt.Sprintf. Unknown keys are returned as-is.
func Get(key string) string {
	lookup := catalog().Get
	return lookup(key)
}
