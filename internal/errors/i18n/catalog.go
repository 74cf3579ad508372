// Package i18n provides localized message catalogs for domain error codes.
package i18n

import (
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code mirrors the string value of an internal/errors Code.
// Codes are duplicated as strings here to avoid an import cycle.
type Code = string

// Catalog holds the localized messages for one locale.
type Catalog struct {
	locale   string
	tag      language.Tag
	messages map[Code]string
}

// Locale returns the catalog's locale identifier.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code, interpolating metadata fields.
// Unknown codes fall back to a generic message so the transport layer
// never leaks raw codes to players.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return "An unexpected combat error occurred"
	}
	if len(metadata) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := template.New(code).Parse(msg)
	if err != nil {
		return msg
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return msg
	}
	return b.String()
}

// catalogs lists every supported catalog. Order determines match priority.
var catalogs = []*Catalog{enUSCatalog}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(catalogs))
	for _, c := range catalogs {
		tags = append(tags, c.tag)
	}
	return language.NewMatcher(tags)
}()

// GetCatalog returns the best catalog for the requested locale.
// Unrecognized locales fall back to en-US.
func GetCatalog(locale string) *Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		return enUSCatalog
	}
	_, index, _ := matcher.Match(tag)
	if index < 0 || index >= len(catalogs) {
		return enUSCatalog
	}
	return catalogs[index]
}
