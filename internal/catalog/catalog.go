// Package catalog is the static table of original game audio ids. The save
// codec uses it to backfill entry kind and display name for older documents,
// and the editor uses it to classify a new entry as a replacement.
package catalog

import "strings"

// OriginalAudio describes one original game asset that a pack may replace.
type OriginalAudio struct {
	ID    string
	Name  string
	Group string
}

// Catalog resolves audio ids against the known-original table.
// The zero value is not usable; construct one with Default or New.
type Catalog struct {
	byID map[string]OriginalAudio
	all  []OriginalAudio
}

// New builds a catalog from an explicit table. Ids are matched
// case-insensitively.
func New(audios []OriginalAudio) *Catalog {
	c := &Catalog{
		byID: make(map[string]OriginalAudio, len(audios)),
		all:  append([]OriginalAudio(nil), audios...),
	}
	for _, audio := range audios {
		c.byID[strings.ToLower(audio.ID)] = audio
	}
	return c
}

// Default returns the catalog of the target game's original audio cues.
func Default() *Catalog {
	return New(originalAudios)
}

// Lookup returns the original audio matching id, case-insensitively.
func (c *Catalog) Lookup(id string) (OriginalAudio, bool) {
	audio, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	return audio, ok
}

// All returns the table in its authored order.
func (c *Catalog) All() []OriginalAudio {
	cp := make([]OriginalAudio, len(c.all))
	copy(cp, c.all)
	return cp
}

var originalAudios = []OriginalAudio{
	// Seasonal ambience
	{ID: "spring_day_ambient", Name: "Spring - Day (Ambient)", Group: "Seasons"},
	{ID: "spring_night_ambient", Name: "Spring - Night (Ambient)", Group: "Seasons"},
	{ID: "summer_day_ambient", Name: "Summer - Day (Ambient)", Group: "Seasons"},
	{ID: "summer_night_ambient", Name: "Summer - Night (Ambient)", Group: "Seasons"},
	{ID: "fall_day_ambient", Name: "Fall - Day (Ambient)", Group: "Seasons"},
	{ID: "fall_night_ambient", Name: "Fall - Night (Ambient)", Group: "Seasons"},
	{ID: "winter_day_ambient", Name: "Winter - Day (Ambient)", Group: "Seasons"},
	{ID: "winter_night_ambient", Name: "Winter - Night (Ambient)", Group: "Seasons"},

	// Spring
	{ID: "spring1", Name: "It's A Big World Outside", Group: "Spring"},
	{ID: "spring2", Name: "Cloud Country", Group: "Spring"},
	{ID: "spring3", Name: "Spring (The Valley Comes Alive)", Group: "Spring"},

	// Summer
	{ID: "summer1", Name: "Nature's Crescendo", Group: "Summer"},
	{ID: "summer2", Name: "The Sun Can Bend An Orange Sky", Group: "Summer"},
	{ID: "summer3", Name: "A Golden Star Was Born", Group: "Summer"},

	// Fall
	{ID: "fall1", Name: "Fall (Ghost Synth)", Group: "Fall"},
	{ID: "fall2", Name: "Raven's Descent", Group: "Fall"},
	{ID: "fall3", Name: "The Smell of Mushroom", Group: "Fall"},

	// Winter
	{ID: "winter1", Name: "Nocturne of Ice", Group: "Winter"},
	{ID: "winter2", Name: "The Frozen World Outside", Group: "Winter"},
	{ID: "winter3", Name: "Winter (Ancient)", Group: "Winter"},

	// Locations
	{ID: "Saloon1", Name: "Saloon - Honky Tonk", Group: "Locations"},
	{ID: "SamBand", Name: "Sam's Band", Group: "Locations"},
	{ID: "Hospital_Ambient", Name: "Hospital / Clinic", Group: "Locations"},
	{ID: "MarlonsTheme", Name: "Marlon's Theme (Guild)", Group: "Locations"},
	{ID: "WizardSong", Name: "Wizard's Theme", Group: "Locations"},
	{ID: "EmilyTheme", Name: "Emily's Theme", Group: "Locations"},
	{ID: "ElliottPiano", Name: "Elliott's Piano", Group: "Locations"},
	{ID: "VolcanoMines", Name: "Volcano Mines", Group: "Locations"},
	{ID: "caldera", Name: "Caldera", Group: "Locations"},

	// Mines
	{ID: "Crystal_Caves", Name: "Mines - Ice Levels", Group: "Mines"},
	{ID: "Cloth_Caves", Name: "Mines - Lava Levels", Group: "Mines"},
	{ID: "Mines1", Name: "Mines - Early Levels", Group: "Mines"},
	{ID: "SkullCave", Name: "Skull Cavern", Group: "Mines"},
	{ID: "tribal", Name: "Tribal (Deep Mines)", Group: "Mines"},

	// Menu
	{ID: "MainTheme", Name: "Main Theme (Title)", Group: "Menu"},
	{ID: "Cloud_Country", Name: "Cloud Country (Menu)", Group: "Menu"},
	{ID: "title_night", Name: "Night Theme (Title)", Group: "Menu"},
	{ID: "movieTheater", Name: "Movie Theater", Group: "Menu"},
	{ID: "movieTheaterAfter", Name: "Movie Theater (After)", Group: "Menu"},

	// Festivals
	{ID: "FlowerDance", Name: "Flower Dance", Group: "Festivals"},
	{ID: "Luau", Name: "Luau", Group: "Festivals"},
	{ID: "MoonlightJellies", Name: "Dance of the Moonlight Jellies", Group: "Festivals"},
	{ID: "FairyIceCastle", Name: "Festival of Ice", Group: "Festivals"},
	{ID: "WinterFestival", Name: "Winter Festival", Group: "Festivals"},
	{ID: "FallFest", Name: "Fall Fair", Group: "Festivals"},
	{ID: "SpiritsEve", Name: "Spirit's Eve", Group: "Festivals"},
	{ID: "EggFestival", Name: "Egg Festival", Group: "Festivals"},

	// Events
	{ID: "Grandpa", Name: "Grandpa's Theme", Group: "Events"},
	{ID: "wedding", Name: "Wedding", Group: "Events"},
	{ID: "EarthMine", Name: "Earth Mine (Event)", Group: "Events"},
	{ID: "FrogCave", Name: "Frog Cave", Group: "Events"},

	// Minigames
	{ID: "Cowboy_OVERWORLD", Name: "Prairie King - Overworld", Group: "Minigames"},
	{ID: "Cowboy_boss", Name: "Prairie King - Boss", Group: "Minigames"},
	{ID: "JunimoKart", Name: "Junimo Kart", Group: "Minigames"},
	{ID: "crane_game", Name: "Crane Game", Group: "Minigames"},

	// Island
	{ID: "IslandMusic", Name: "Island Music", Group: "Island"},
	{ID: "PIRATE_THEME", Name: "Pirate Theme", Group: "Island"},
	{ID: "fieldofficeTentMusic", Name: "Field Office Tent", Group: "Island"},

	// Other
	{ID: "communityCenter", Name: "Community Center", Group: "Other"},
	{ID: "woodsTheme", Name: "Secret Woods", Group: "Other"},
	{ID: "sewer", Name: "Sewer", Group: "Other"},
	{ID: "nightTime", Name: "Night Time", Group: "Other"},
	{ID: "sweet", Name: "Sweet", Group: "Other"},
	{ID: "sad", Name: "Sad", Group: "Other"},

	// Ambient sounds
	{ID: "croak", Name: "Frog Croak", Group: "Ambience"},
	{ID: "rainsound", Name: "Rain", Group: "Ambience"},
	{ID: "thunder", Name: "Thunder", Group: "Ambience"},
	{ID: "thunder_small", Name: "Thunder (Small)", Group: "Ambience"},
}
