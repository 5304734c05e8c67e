package report

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/baxromumarov/seo-auditor/internal/audit"
)

var titleCaser = cases.Title(language.English)

// severityLabel turns "med" into "Med".
func severityLabel(s audit.Severity) string {
	return titleCaser.String(string(s))
}
