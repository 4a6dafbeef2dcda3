package testutil

import (
	"fmt"

	"github.com/roach88/heroes/internal/hero"
)

// rosterEntry mirrors one line of the default catalog.
type rosterEntry struct {
	name, power, brand string
}

var roster = []rosterEntry{
	{"Superman", "Flight", "DC"},
	{"Spiderman", "Spider-sense", "Marvel"},
	{"Wonder Woman", "Strength", "DC"},
	{"Batman", "Intellect", "DC"},
	{"Iron Man", "Armor", "Marvel"},
	{"Captain America", "Super soldier", "Marvel"},
	{"Thor", "God of Thunder", "Marvel"},
	{"Hulk", "Super strength", "Marvel"},
	{"Black Widow", "Espionage", "Marvel"},
	{"Hawkeye", "Master archer", "Marvel"},
	{"Black Panther", "Enhanced senses", "Marvel"},
	{"Doctor Strange", "Sorcery", "Marvel"},
	{"Scarlet Witch", "Reality warping", "Marvel"},
	{"Ant-Man", "Size shifting", "Marvel"},
	{"Captain Marvel", "Cosmic energy", "Marvel"},
	{"The Flash", "Super speed", "DC"},
	{"Green Lantern", "Power ring constructs", "DC"},
	{"Aquaman", "Atlantean telepathy", "DC"},
	{"Cyborg", "Tech integration", "DC"},
	{"Supergirl", "Kryptonian powers", "DC"},
	{"Batgirl", "Martial arts", "DC"},
	{"Green Arrow", "Master archer", "DC"},
	{"Shazam", "Magic lightning", "DC"},
	{"Wolverine", "Healing factor", "Marvel"},
	{"Daredevil", "Radar sense", "Marvel"},
}

// Roster returns the 25 heroes of the default catalog, in catalog order,
// with ids "1" .. "25" and CreatedAt 1 .. 25.
func Roster() []hero.Record {
	out := make([]hero.Record, len(roster))
	for i, e := range roster {
		out[i] = hero.Record{
			ID:        fmt.Sprintf("%d", i+1),
			Name:      e.name,
			Power:     e.power,
			Brand:     e.brand,
			CreatedAt: int64(i + 1),
		}
	}
	return out
}
