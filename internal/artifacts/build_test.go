package artifacts_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"packsmith/internal/artifacts"
	"packsmith/internal/project"
)

func sampleEntries() []project.Entry {
	return []project.Entry{
		{
			ID:       "spring1",
			Kind:     project.KindReplace,
			Category: project.CategoryMusic,
			Files:    []string{"spring1.ogg"},
			Looped:   true,
		},
		{
			ID:       "my_theme",
			Kind:     project.KindCustom,
			Category: project.CategoryMusic,
			Files:    []string{"theme_a.ogg", "theme_b.ogg"},
			Jukebox:  &project.JukeboxTrack{Name: "My Theme", Available: true},
		},
		{
			ID:       "empty_slot",
			Kind:     project.KindCustom,
			Category: project.CategorySound,
			Files:    []string{},
		},
	}
}

func TestBuildManifestShape(t *testing.T) {
	cfg := project.Config{
		ID:          "Me.RainPack",
		Name:        "Rain Pack",
		Author:      "Me",
		Version:     "1.2.0",
		Description: "Softer rain",
	}
	data, err := artifacts.EncodeJSON(artifacts.BuildManifest(cfg))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["UniqueID"] != "Me.RainPack" || doc["Name"] != "Rain Pack" {
		t.Fatalf("identity fields wrong: %v", doc)
	}
	keys, ok := doc["UpdateKeys"].([]any)
	if !ok || len(keys) != 0 {
		t.Fatalf("UpdateKeys must be an empty array, got %v", doc["UpdateKeys"])
	}
	host, ok := doc["ContentPackFor"].(map[string]any)
	if !ok || host["UniqueID"] != artifacts.ContentPatcherID {
		t.Fatalf("ContentPackFor wrong: %v", doc["ContentPackFor"])
	}
}

func TestBuildContentPatches(t *testing.T) {
	doc := artifacts.BuildContent(sampleEntries())

	if doc.Format != artifacts.ContentFormat {
		t.Fatalf("format %q, want %q", doc.Format, artifacts.ContentFormat)
	}
	if len(doc.Changes) != 2 {
		t.Fatalf("expected audio + jukebox patches, got %d", len(doc.Changes))
	}

	audio := doc.Changes[0]
	if audio.Action != "EditData" || audio.Target != "Data/AudioChanges" {
		t.Fatalf("unexpected first patch: %+v", audio)
	}
	if got := audio.Entries.Keys(); len(got) != 2 || got[0] != "spring1" || got[1] != "my_theme" {
		t.Fatalf("audio entries %v, want project order without empty_slot", got)
	}

	data, err := audio.Entries.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal entries: %v", err)
	}
	var entries map[string]map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("unmarshal entries: %v", err)
	}
	spring := entries["spring1"]
	if spring["Looped"] != true {
		t.Fatal("looped music entry must carry Looped")
	}
	if spring["StreamedVorbis"] != true {
		t.Fatal("entries must request streamed vorbis")
	}
	paths := spring["FilePaths"].([]any)
	if paths[0] != "{{AbsoluteFilePath: assets/spring1.ogg}}" {
		t.Fatalf("unexpected file path token: %v", paths[0])
	}
	if _, present := entries["my_theme"]["Looped"]; present {
		t.Fatal("non-looped entry must omit Looped")
	}

	jukebox := doc.Changes[1]
	if jukebox.Target != "Data/JukeboxTracks" {
		t.Fatalf("unexpected second patch: %+v", jukebox)
	}
	value, ok := jukebox.Entries.Get("my_theme")
	if !ok {
		t.Fatal("jukebox-enabled entry missing from track patch")
	}
	raw, _ := json.Marshal(value)
	if !bytes.Contains(raw, []byte("{{i18n:Music.my_theme}}")) {
		t.Fatalf("jukebox name must reference i18n key: %s", raw)
	}
}

func TestBuildContentOmitsEmptyPatches(t *testing.T) {
	doc := artifacts.BuildContent([]project.Entry{
		{ID: "no_files", Category: project.CategorySound, Files: nil},
	})
	if len(doc.Changes) != 0 {
		t.Fatalf("file-less entries must produce no patches: %+v", doc.Changes)
	}
}

func TestBuildLocalization(t *testing.T) {
	table := artifacts.BuildLocalization(sampleEntries())
	if table.Len() != 1 {
		t.Fatalf("expected one i18n key, got %d", table.Len())
	}
	name, _ := table.Get("Music.my_theme")
	if name != "My Theme" {
		t.Fatalf("i18n value %v, want display name", name)
	}
}

func TestEncodeJSONIsDeterministic(t *testing.T) {
	entries := sampleEntries()

	first, err := artifacts.EncodeJSON(artifacts.BuildContent(entries))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := artifacts.EncodeJSON(artifacts.BuildContent(entries))
	if err != nil {
		t.Fatalf("encode again: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("repeat builds must be byte identical")
	}

	text := string(first)
	if strings.HasSuffix(text, "\n") {
		t.Fatal("documents are written without a trailing newline")
	}
	if !strings.Contains(text, "\n    \"Format\"") {
		t.Fatal("documents use four-space indentation")
	}
}

func TestRequiredFilesDeduplicatesInOrder(t *testing.T) {
	files := artifacts.RequiredFiles([]project.Entry{
		{ID: "a", Files: []string{"one.ogg", "two.ogg"}},
		{ID: "b", Files: []string{"two.ogg", "three.ogg"}},
	})
	want := []string{"one.ogg", "two.ogg", "three.ogg"}
	if len(files) != len(want) {
		t.Fatalf("files %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files %v, want %v", files, want)
		}
	}

	readme := artifacts.BuildAssetsReadme([]project.Entry{{ID: "a", Files: []string{"one.ogg"}}})
	if !strings.Contains(readme, "  - one.ogg") || !strings.Contains(readme, "Total files needed: 1") {
		t.Fatalf("readme missing required file list:\n%s", readme)
	}
}
