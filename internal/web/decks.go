package web

import (
	"sort"

	"github.com/peterkuimelis/parley/internal/game"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CardType    string   `json:"cardType"`
	Cost        string   `json:"cost"`
	Effects     []string `json:"effects"`
	Custom      bool     `json:"custom,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number       int      `json:"number"`
	Name         string   `json:"name"`
	Origin       string   `json:"origin"`
	Resolve      int      `json:"resolve"`
	ActionPoints int      `json:"actionPoints"`
	Size         int      `json:"size"`
	Cards        []string `json:"cards"`
}

func newCardInfo(c *game.Card, custom bool) CardInfo {
	ci := CardInfo{
		Name:        c.Name,
		Description: c.Description,
		CardType:    c.Type.String(),
		Cost:        c.Cost.String(),
		Effects:     make([]string, 0, len(c.Effects)),
		Custom:      custom,
	}
	for _, e := range c.Effects {
		ci.Effects = append(ci.Effects, e.String())
	}
	return ci
}

// cardInfos lists built-in cards followed by the content file's custom
// cards, each group sorted by name. content may be nil.
func cardInfos(content *game.Content) []CardInfo {
	cards := make([]CardInfo, 0, len(game.CardRegistry))
	for _, name := range game.RegisteredCardNames() {
		if content != nil {
			if _, overridden := content.Cards[name]; overridden {
				continue
			}
		}
		cards = append(cards, newCardInfo(game.LookupCard(name), false))
	}
	if content == nil {
		return cards
	}
	custom := make([]string, 0, len(content.Cards))
	for name := range content.Cards {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	for _, name := range custom {
		cards = append(cards, newCardInfo(content.Cards[name], true))
	}
	return cards
}

func deckInfos(content *game.Content) []DeckInfo {
	decks := make([]DeckInfo, 0, len(content.Decks))
	for i, d := range content.Decks {
		di := DeckInfo{
			Number:       i + 1,
			Name:         d.Name,
			Origin:       d.Origin.Name,
			Resolve:      d.Origin.MaxResolve,
			ActionPoints: d.Origin.MaxActionPoints,
			Size:         len(d.Cards),
			Cards:        []string{},
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			if !seen[c.Name] {
				di.Cards = append(di.Cards, c.Name)
				seen[c.Name] = true
			}
		}
		decks = append(decks, di)
	}
	return decks
}
