// Package formbook converts submission request questionnaires to and from
// xlsx workbooks that serve as offline, partially editable forms.
package formbook

import (
	"log/slog"
	"time"

	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
)

// TemplateVersion is the workbook layout version written to the metadata
// sheet.
const TemplateVersion = "1.0.0"

// DefaultCreator is the document creator when Options.Creator is empty.
const DefaultCreator = "formbook"

// Options configures export and parse.
type Options struct {
	// Metadata is the static record information. On export it is written to
	// the hidden metadata sheet; on parse it is compared with the sheet.
	Metadata models.Metadata
	// Fetchers supply lookup lists. Missing fetchers yield empty lists.
	Fetchers lookup.Fetchers
	// Logger receives recoverable conditions. If nil, output is discarded.
	Logger *slog.Logger
	// Now returns the export time. If nil, time.Now is used.
	Now func() time.Time
	// Creator is the document creator property.
	Creator string
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Now:     time.Now,
		Creator: DefaultCreator,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o Options) creator() string {
	if o.Creator == "" {
		return DefaultCreator
	}
	return o.Creator
}
