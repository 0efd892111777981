// Package locale turns transition results into user-facing text.
package locale

import (
	"embed"
	"fmt"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFiles embed.FS

var messagePaths = []string{
	"messages/active.en.toml",
	"messages/active.de.toml",
}

var statusIDs = map[serialnav.Status]string{
	serialnav.StatusOK:               "StatusOK",
	serialnav.StatusInvalidOperation: "StatusInvalidOperation",
	serialnav.StatusTargetNotFound:   "StatusTargetNotFound",
	serialnav.StatusForced:           "StatusForced",
}

// Describer localizes statuses and results.
type Describer struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// New creates a describer for the first supported language in langs, falling
// back to English. Malformed language tags are an error.
func New(langs ...string) (*Describer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, path := range messagePaths {
		data, err := messageFiles.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("locale: %w", err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path); err != nil {
			return nil, fmt.Errorf("locale: %s: %w", path, err)
		}
	}

	requested := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		if l == "" {
			continue
		}
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("locale: %q: %w", l, err)
		}
		requested = append(requested, tag)
	}

	tag := language.English
	if len(requested) > 0 {
		matcher := language.NewMatcher(bundle.LanguageTags())
		_, index, confidence := matcher.Match(requested...)
		if confidence != language.No {
			tag = bundle.LanguageTags()[index]
		}
	}

	return &Describer{
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
	}, nil
}

// Language returns the language messages are rendered in.
func (d *Describer) Language() language.Tag {
	return d.tag
}

// Status returns the short text for s.
func (d *Describer) Status(s serialnav.Status) string {
	id, ok := statusIDs[s]
	if !ok {
		return s.String()
	}
	msg, err := d.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return s.String()
	}
	return msg
}

// Result returns a one-line description of r.
func (d *Describer) Result(r serialnav.Result) string {
	msg, err := d.localizer.Localize(&i18n.LocalizeConfig{
		MessageID: "ResultLine",
		TemplateData: map[string]any{
			"Op":     r.Descriptor.Kind.String(),
			"Target": r.Descriptor.Target.String(),
			"Status": d.Status(r.Status),
		},
	})
	if err != nil {
		return fmt.Sprintf("%s %s: %s", r.Descriptor.Kind, r.Descriptor.Target, r.Status)
	}
	return msg
}
