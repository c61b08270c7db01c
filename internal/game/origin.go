package game

import (
	"fmt"
	"sort"
	"strings"
)

// Origin supplies a combatant's base stats.
type Origin struct {
	Name            string `yaml:"name"`
	MaxResolve      int    `yaml:"resolve"`
	MaxActionPoints int    `yaml:"action_points"`
	Description     string `yaml:"description"`
}

// Built-in origins.
var (
	OriginFaithLeader = Origin{Name: "Faith Leader", MaxResolve: 20, MaxActionPoints: 3, Description: "Builds Composure and converts it into damage."}
	OriginNepoBaby    = Origin{Name: "Nepo Baby", MaxResolve: 20, MaxActionPoints: 4, Description: "Extra Action Points, banks more for later."}
	OriginActor       = Origin{Name: "Actor", MaxResolve: 20, MaxActionPoints: 3, Description: "Gambles on random damage and thrives on Hostility."}
)

// OriginRegistry maps origin names to their base stats. Content files may
// add entries or override these.
var OriginRegistry = map[string]Origin{
	OriginFaithLeader.Name: OriginFaithLeader,
	OriginNepoBaby.Name:    OriginNepoBaby,
	OriginActor.Name:       OriginActor,
}

// LookupOrigin finds an origin by name, ignoring case and spaces.
func LookupOrigin(name string) (Origin, error) {
	if o, ok := OriginRegistry[name]; ok {
		return o, nil
	}
	key := normalizeName(name)
	for n, o := range OriginRegistry {
		if normalizeName(n) == key {
			return o, nil
		}
	}
	return Origin{}, fmt.Errorf("unknown origin %q", name)
}

// OriginNames returns all registered origin names, sorted.
func OriginNames() []string {
	names := make([]string, 0, len(OriginRegistry))
	for n := range OriginRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func normalizeName(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s))
}
