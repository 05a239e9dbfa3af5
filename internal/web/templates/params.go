// Package templates renders the HTML pages of the roster service.
//
// Components live in .templ files; the *_templ.go files are generated.
package templates

//go:generate templ generate

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/rajkumarmali01/Employee-Analysis/internal/core"
)

// IndexParams drives the upload form.
type IndexParams struct {
	Profiles       []core.ProfileInfo
	DefaultProfile string
	MaxFileSizeMB  int64
}

// Download is one attachment offered on the result page.
type Download struct {
	Label    string
	FileName string
	MIME     string
	Data     []byte
}

// ResultParams drives the result page.
type ResultParams struct {
	RunID          string
	Profile        string
	Diagnostics    core.Diagnostics
	PrimaryColumns []string
	SeatingColumns []string
	Columns        []string
	Rows           [][]string // Preview rows, already rendered
	TotalRows      int
	Join           *core.JoinReport
	Downloads      []Download
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

// dataURL inlines d as a base64 data URL. Nothing is stored server side, so
// the result page carries its downloads.
func dataURL(d Download) templ.SafeURL {
	return templ.SafeURL("data:" + d.MIME + ";base64," + base64.StdEncoding.EncodeToString(d.Data))
}

func previewSummary(shown, total int) string {
	if shown < total {
		return fmt.Sprintf("First %d of %d rows.", shown, total)
	}
	return fmt.Sprintf("%d rows.", total)
}
