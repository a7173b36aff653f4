// Package artifacts generates the content-pack documents consumed by the
// game's content loader: manifest.json, content.json, and the i18n string
// table. Generation is deterministic so the exporter can promise identical
// output across packaging profiles.
package artifacts

import (
	"fmt"
	"strings"

	"packsmith/internal/project"
)

// ContentPatcherID is the framework every generated pack declares as host.
const ContentPatcherID = "Pathoschild.ContentPatcher"

// ContentFormat is the change-document format revision the builders target.
const ContentFormat = "2.0.0"

// Manifest is the pack's manifest.json document.
type Manifest struct {
	Name           string         `json:"Name"`
	Author         string         `json:"Author"`
	Version        string         `json:"Version"`
	Description    string         `json:"Description"`
	UniqueID       string         `json:"UniqueID"`
	UpdateKeys     []string       `json:"UpdateKeys"`
	ContentPackFor ContentPackFor `json:"ContentPackFor"`
}

type ContentPackFor struct {
	UniqueID string `json:"UniqueID"`
}

// ContentDocument is the pack's content.json document.
type ContentDocument struct {
	Format  string   `json:"Format"`
	Changes []Change `json:"Changes"`
}

// Change is one EditData patch in content.json.
type Change struct {
	Action  string    `json:"Action"`
	Target  string    `json:"Target"`
	Entries *EntryMap `json:"Entries"`
}

type audioChange struct {
	ID             string   `json:"Id"`
	Category       string   `json:"Category"`
	FilePaths      []string `json:"FilePaths"`
	StreamedVorbis bool     `json:"StreamedVorbis"`
	Looped         *bool    `json:"Looped,omitempty"`
}

type jukeboxChange struct {
	ID        string `json:"Id"`
	Name      string `json:"Name"`
	Available bool   `json:"Available"`
}

// BuildManifest assembles manifest.json from the pack config.
func BuildManifest(cfg project.Config) Manifest {
	return Manifest{
		Name:           cfg.Name,
		Author:         cfg.Author,
		Version:        cfg.Version,
		Description:    cfg.Description,
		UniqueID:       cfg.ID,
		UpdateKeys:     []string{},
		ContentPackFor: ContentPackFor{UniqueID: ContentPatcherID},
	}
}

// BuildContent assembles content.json. Entries without any assigned file are
// left out entirely; a patch referencing a missing file would break the whole
// pack at load time. Music entries marked looped carry the Looped flag, and
// every jukebox-enabled entry gets a second patch registering its track.
func BuildContent(entries []project.Entry) ContentDocument {
	doc := ContentDocument{Format: ContentFormat}

	audio := NewEntryMap()
	jukebox := NewEntryMap()
	for _, entry := range entries {
		if len(entry.Files) == 0 {
			continue
		}
		paths := make([]string, 0, len(entry.Files))
		for _, file := range entry.Files {
			paths = append(paths, fmt.Sprintf("{{AbsoluteFilePath: assets/%s}}", file))
		}
		change := audioChange{
			ID:             entry.ID,
			Category:       string(entry.Category),
			FilePaths:      paths,
			StreamedVorbis: true,
		}
		if entry.Category == project.CategoryMusic && entry.Looped {
			looped := true
			change.Looped = &looped
		}
		audio.Set(entry.ID, change)

		if entry.Jukebox != nil {
			jukebox.Set(entry.ID, jukeboxChange{
				ID:        entry.ID,
				Name:      fmt.Sprintf("{{i18n:Music.%s}}", entry.ID),
				Available: entry.Jukebox.Available,
			})
		}
	}

	if audio.Len() > 0 {
		doc.Changes = append(doc.Changes, Change{
			Action:  "EditData",
			Target:  "Data/AudioChanges",
			Entries: audio,
		})
	}
	if jukebox.Len() > 0 {
		doc.Changes = append(doc.Changes, Change{
			Action:  "EditData",
			Target:  "Data/JukeboxTracks",
			Entries: jukebox,
		})
	}
	return doc
}

// BuildLocalization assembles the default i18n table mapping jukebox track
// keys to their display names.
func BuildLocalization(entries []project.Entry) *EntryMap {
	table := NewEntryMap()
	for _, entry := range entries {
		if len(entry.Files) == 0 || entry.Jukebox == nil {
			continue
		}
		table.Set("Music."+entry.ID, entry.Jukebox.Name)
	}
	return table
}

// RequiredFiles lists every referenced asset file once, in entry order.
func RequiredFiles(entries []project.Entry) []string {
	seen := make(map[string]struct{})
	var files []string
	for _, entry := range entries {
		for _, file := range entry.Files {
			if _, dup := seen[file]; dup {
				continue
			}
			seen[file] = struct{}{}
			files = append(files, file)
		}
	}
	return files
}

// BuildAssetsReadme renders the README.txt dropped into the assets folder.
func BuildAssetsReadme(entries []project.Entry) string {
	required := RequiredFiles(entries)

	var b strings.Builder
	b.WriteString("ASSETS FOLDER\n")
	b.WriteString("==================\n\n")
	b.WriteString("Place your .ogg audio files here.\n\n")
	b.WriteString("Required files:\n")
	for _, file := range required {
		fmt.Fprintf(&b, "  - %s\n", file)
	}
	b.WriteString("\nIMPORTANT:\n")
	b.WriteString("- Use OGG Vorbis format (NOT Opus!)\n")
	b.WriteString("- Sample rate: 44100Hz or 48000Hz\n")
	b.WriteString("- Use Audacity to convert if needed\n\n")
	fmt.Fprintf(&b, "Total files needed: %d\n", len(required))
	return b.String()
}
