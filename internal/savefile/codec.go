package savefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"packsmith/internal/catalog"
	"packsmith/internal/project"
)

// FormatVersion is the version written on every encoded document.
const FormatVersion = "3.0.0"

// Environment tags which host produced a save document.
type Environment string

const (
	EnvDesktop Environment = "desktop"
	EnvWeb     Environment = "web"
)

var (
	// ErrNotAProject marks documents that parse as JSON but are not save files.
	ErrNotAProject = errors.New("not a project document")
	// ErrUnsupportedVersion marks documents written by an unknown format revision.
	ErrUnsupportedVersion = errors.New("unsupported save format version")
)

var acceptedVersions = map[string]struct{}{
	"1.0.0": {},
	"2.0.0": {},
	"3.0.0": {},
}

// Snapshot is the decoded payload of a save document.
type Snapshot struct {
	Config        project.Config
	Entries       []project.Entry
	FormatVersion string
	SavedAt       time.Time
	Origin        Environment
}

// Codec encodes and decodes versioned save documents. Documents carry both
// canonical and legacy field names so saves remain loadable across format
// revisions and across the desktop and web hosts; the injected catalog
// backfills entry kind and display name for older saves that omitted them.
type Codec struct {
	catalog *catalog.Catalog
}

// NewCodec builds a codec resolving replacement ids against cat.
func NewCodec(cat *catalog.Catalog) *Codec {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Codec{catalog: cat}
}

type jukeboxDoc struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// configDoc writes every field under its canonical short name and its
// long-form legacy alias.
type configDoc struct {
	ID             string `json:"id"`
	ModID          string `json:"modId"`
	Name           string `json:"name"`
	ModName        string `json:"modName"`
	Author         string `json:"author"`
	ModAuthor      string `json:"modAuthor"`
	Version        string `json:"version"`
	ModVersion     string `json:"modVersion"`
	Description    string `json:"description"`
	ModDescription string `json:"modDescription"`
}

type entryDoc struct {
	ID                  string      `json:"id"`
	Kind                string      `json:"kind"`
	Type                string      `json:"type"`
	OriginalDisplayName *string     `json:"originalDisplayName"`
	OriginalName        *string     `json:"originalName"`
	Category            string      `json:"category"`
	Files               []string    `json:"files"`
	Looped              bool        `json:"looped"`
	Jukebox             *jukeboxDoc `json:"jukebox"`
}

type document struct {
	Config            *configDoc `json:"config"`
	Entries           []entryDoc `json:"entries"`
	FormatVersion     string     `json:"formatVersion"`
	SavedAtUtc        string     `json:"savedAtUtc"`
	OriginEnvironment string     `json:"originEnvironment"`
}

// decodeEntry mirrors entryDoc with presence-detecting pointers so canonical
// names win when both aliases appear.
type decodeEntry struct {
	ID                  string      `json:"id"`
	Kind                *string     `json:"kind"`
	Type                *string     `json:"type"`
	OriginalDisplayName *string     `json:"originalDisplayName"`
	OriginalName        *string     `json:"originalName"`
	Category            string      `json:"category"`
	Files               []string    `json:"files"`
	Looped              *bool       `json:"looped"`
	Jukebox             *jukeboxDoc `json:"jukebox"`
}

type decodeConfig struct {
	ID             *string `json:"id"`
	ModID          *string `json:"modId"`
	Name           *string `json:"name"`
	ModName        *string `json:"modName"`
	Author         *string `json:"author"`
	ModAuthor      *string `json:"modAuthor"`
	Version        *string `json:"version"`
	ModVersion     *string `json:"modVersion"`
	Description    *string `json:"description"`
	ModDescription *string `json:"modDescription"`
}

type decodeDocument struct {
	Config            *decodeConfig `json:"config"`
	Entries           []decodeEntry `json:"entries"`
	Audios            []decodeEntry `json:"audios"`
	FormatVersion     string        `json:"formatVersion"`
	Version           string        `json:"version"`
	SavedAtUtc        string        `json:"savedAtUtc"`
	SavedAt           string        `json:"saved_at"`
	OriginEnvironment string        `json:"originEnvironment"`
	Platform          string        `json:"platform"`
}

// Encode serializes config and entries into a versioned save document.
func (c *Codec) Encode(cfg project.Config, entries []project.Entry, origin Environment, savedAt time.Time) ([]byte, error) {
	doc := document{
		Config: &configDoc{
			ID: cfg.ID, ModID: cfg.ID,
			Name: cfg.Name, ModName: cfg.Name,
			Author: cfg.Author, ModAuthor: cfg.Author,
			Version: cfg.Version, ModVersion: cfg.Version,
			Description: cfg.Description, ModDescription: cfg.Description,
		},
		Entries:           make([]entryDoc, 0, len(entries)),
		FormatVersion:     FormatVersion,
		SavedAtUtc:        savedAt.UTC().Format(time.RFC3339),
		OriginEnvironment: string(origin),
	}

	for _, entry := range entries {
		var original *string
		if entry.OriginalName != "" {
			name := entry.OriginalName
			original = &name
		}
		var jukebox *jukeboxDoc
		if entry.Jukebox != nil {
			jukebox = &jukeboxDoc{Name: entry.Jukebox.Name, Available: entry.Jukebox.Available}
		}
		doc.Entries = append(doc.Entries, entryDoc{
			ID:                  entry.ID,
			Kind:                string(entry.Kind),
			Type:                string(entry.Kind),
			OriginalDisplayName: original,
			OriginalName:        original,
			Category:            string(entry.Category),
			Files:               append([]string{}, entry.Files...),
			Looped:              entry.Looped,
			Jukebox:             jukebox,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode save document: %w", err)
	}
	return data, nil
}

// Decode parses a save document produced by either host at any accepted
// format revision. Unsupported versions and non-project payloads return a
// typed error; callers restoring automatically treat every error as
// "nothing to restore".
func (c *Codec) Decode(data []byte) (*Snapshot, error) {
	var doc decodeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse save document: %w", err)
	}
	if doc.Config == nil && doc.Entries == nil && doc.Audios == nil {
		return nil, ErrNotAProject
	}

	version := strings.TrimSpace(doc.FormatVersion)
	if version == "" {
		version = strings.TrimSpace(doc.Version)
	}
	if _, ok := acceptedVersions[version]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}

	snapshot := &Snapshot{
		Config:        c.decodeConfig(doc.Config),
		FormatVersion: version,
		Origin:        decodeOrigin(doc.OriginEnvironment, doc.Platform),
	}

	savedAt := firstNonEmpty(doc.SavedAtUtc, doc.SavedAt)
	if savedAt != "" {
		if ts, err := time.Parse(time.RFC3339, savedAt); err == nil {
			snapshot.SavedAt = ts
		}
	}

	raw := doc.Entries
	if raw == nil {
		raw = doc.Audios
	}
	snapshot.Entries = make([]project.Entry, 0, len(raw))
	for _, e := range raw {
		snapshot.Entries = append(snapshot.Entries, c.decodeEntry(e))
	}
	return snapshot, nil
}

func (c *Codec) decodeConfig(doc *decodeConfig) project.Config {
	cfg := project.DefaultConfig()
	// The documented default for a missing description is empty, not the
	// seed text used for brand-new projects.
	cfg.Description = ""
	if doc == nil {
		return cfg
	}
	if v := coalesce(doc.ID, doc.ModID); v != "" {
		cfg.ID = v
	}
	if v := coalesce(doc.Name, doc.ModName); v != "" {
		cfg.Name = v
	}
	if v := coalesce(doc.Author, doc.ModAuthor); v != "" {
		cfg.Author = v
	}
	if v := coalesce(doc.Version, doc.ModVersion); v != "" {
		cfg.Version = v
	}
	if v := coalesce(doc.Description, doc.ModDescription); v != "" {
		cfg.Description = v
	}
	return cfg
}

func (c *Codec) decodeEntry(doc decodeEntry) project.Entry {
	entry := project.Entry{
		ID:    doc.ID,
		Files: doc.Files,
	}
	if entry.Files == nil {
		entry.Files = []string{}
	}
	if cat, ok := project.ParseCategory(doc.Category); ok {
		entry.Category = cat
	} else {
		entry.Category = project.CategorySound
	}
	if doc.Looped != nil {
		entry.Looped = *doc.Looped
	}
	if doc.Jukebox != nil {
		entry.Jukebox = &project.JukeboxTrack{Name: doc.Jukebox.Name, Available: doc.Jukebox.Available}
	}

	original, known := c.catalog.Lookup(doc.ID)

	kind := coalesce(doc.Kind, doc.Type)
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case string(project.KindReplace):
		entry.Kind = project.KindReplace
	case string(project.KindCustom):
		entry.Kind = project.KindCustom
	default:
		// Older saves omitted the kind; re-derive it from the catalog.
		if known {
			entry.Kind = project.KindReplace
		} else {
			entry.Kind = project.KindCustom
		}
	}

	switch {
	case doc.OriginalDisplayName != nil:
		entry.OriginalName = *doc.OriginalDisplayName
	case doc.OriginalName != nil:
		entry.OriginalName = *doc.OriginalName
	case known:
		entry.OriginalName = original.Name
	}
	return entry
}

func decodeOrigin(values ...string) Environment {
	for _, value := range values {
		switch Environment(strings.ToLower(strings.TrimSpace(value))) {
		case EnvDesktop:
			return EnvDesktop
		case EnvWeb:
			return EnvWeb
		}
	}
	return ""
}

func coalesce(values ...*string) string {
	for _, value := range values {
		if value != nil && strings.TrimSpace(*value) != "" {
			return *value
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
