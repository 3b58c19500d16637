package render

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"resume-builder/internal/domain"
	"resume-builder/pkg/apperror"
)

//go:embed templates/*.html
var tplFS embed.FS

var funcs = template.FuncMap{
	"dateRange": DateRange,
	"join":      strings.Join,
	"urlLabel":  URLLabel,
}

var templates = template.Must(template.New("resume").Funcs(funcs).ParseFS(tplFS, "templates/*.html"))

// Render is a pure mapping from (document, template id) to an HTML layout.
// Sections whose underlying list or string is empty are omitted; list
// sections render in insertion order.
func Render(doc *domain.Document, id domain.TemplateID) (string, error) {
	if !id.Valid() {
		return "", apperror.NewInvalidInput("unknown template id "+string(id), nil)
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(id)+".html", doc); err != nil {
		return "", apperror.NewInternal("template execution failed", err)
	}
	return buf.String(), nil
}

// DateRange formats "start - end". The current flag takes precedence: when
// set, the terminal label is always "Present", even if an end date is stored.
func DateRange(start, end string, current bool) string {
	terminal := end
	if current {
		terminal = "Present"
	}
	if terminal == "" {
		return start
	}
	return start + " - " + terminal
}

// URLLabel derives a compact label for a certification link: the eTLD+1 of
// the URL host, falling back to the issuer, then to "link".
func URLLabel(rawURL, issuer string) string {
	if rawURL != "" {
		candidate := rawURL
		if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
			candidate = "https://" + candidate
		}
		if parsed, err := url.Parse(candidate); err == nil {
			host := parsed.Hostname()
			if etld, err2 := publicsuffix.EffectiveTLDPlusOne(host); err2 == nil {
				return strings.TrimPrefix(etld, "www.")
			}
			if host != "" {
				return strings.TrimPrefix(host, "www.")
			}
		}
		return rawURL
	}
	if issuer != "" {
		return issuer
	}
	return "link"
}
