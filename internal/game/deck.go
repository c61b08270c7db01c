package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxRandomDamage bounds the roll range of a declared random damage effect.
const maxRandomDamage = 999

// ContentFile represents the top-level YAML structure: optional origin
// overrides, optional custom cards, and the decks.
type ContentFile struct {
	Origins []Origin    `yaml:"origins"`
	Cards   []CardSpec  `yaml:"cards"`
	Decks   []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name   string      `yaml:"name"`
	Origin string      `yaml:"origin"`
	Cards  []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// CardSpec declares a custom card.
type CardSpec struct {
	Name        string       `yaml:"name"`
	Type        string       `yaml:"type"`
	Cost        CostSpec     `yaml:"cost"`
	Description string       `yaml:"description"`
	Effects     []EffectSpec `yaml:"effects"`
}

// CostSpec accepts either an integer or "X"/"all".
type CostSpec Cost

func (c *CostSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: cost must be a number or \"X\"", value.Line)
	}
	switch strings.ToLower(value.Value) {
	case "x", "all":
		*c = CostSpec{All: true}
		return nil
	}
	n, err := strconv.Atoi(value.Value)
	if err != nil || n < 0 {
		return fmt.Errorf("line %d: invalid cost %q", value.Line, value.Value)
	}
	*c = CostSpec{Amount: n}
	return nil
}

// EffectSpec is the flat YAML form of an Effect. Type selects the variant:
// damage, resource, cards or status.
type EffectSpec struct {
	Type     string `yaml:"type"`
	Target   string `yaml:"target"`
	Kind     string `yaml:"kind"`
	Amount   int    `yaml:"amount"`
	Min      int    `yaml:"min"`
	Max      int    `yaml:"max"`
	Status   string `yaml:"status"`
	Stacks   int    `yaml:"stacks"`
	Duration string `yaml:"duration"`
}

// Deck is a resolved deck ready to hand to a BattleConfig.
type Deck struct {
	Name   string
	Origin Origin
	Cards  []*Card
}

// Content is a parsed content file.
type Content struct {
	Origins map[string]Origin
	Cards   map[string]*Card
	Decks   []*Deck
}

// ParseContentFile reads and parses a YAML content file.
func ParseContentFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContent(data)
}

// ParseContent parses YAML content. Card names resolve against custom cards
// first, then the built-in registry.
func ParseContent(data []byte) (*Content, error) {
	var cf ContentFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	c := &Content{
		Origins: make(map[string]Origin),
		Cards:   make(map[string]*Card),
	}
	for name, o := range OriginRegistry {
		c.Origins[name] = o
	}
	for _, o := range cf.Origins {
		if o.Name == "" {
			return nil, fmt.Errorf("origin without a name")
		}
		if base, err := LookupOrigin(o.Name); err == nil {
			o = mergeOrigin(base, o)
		}
		c.Origins[o.Name] = o
	}

	for _, spec := range cf.Cards {
		card, err := spec.Build()
		if err != nil {
			return nil, err
		}
		c.Cards[card.Name] = card
	}

	for _, entry := range cf.Decks {
		deck, err := c.buildDeck(entry)
		if err != nil {
			return nil, err
		}
		c.Decks = append(c.Decks, deck)
	}
	return c, nil
}

// mergeOrigin fills zero fields of o from base.
func mergeOrigin(base, o Origin) Origin {
	if o.MaxResolve == 0 {
		o.MaxResolve = base.MaxResolve
	}
	if o.MaxActionPoints == 0 {
		o.MaxActionPoints = base.MaxActionPoints
	}
	if o.Description == "" {
		o.Description = base.Description
	}
	o.Name = base.Name
	return o
}

func (c *Content) buildDeck(entry DeckEntry) (*Deck, error) {
	deck := &Deck{Name: entry.Name}
	if entry.Origin != "" {
		o, err := c.Origin(entry.Origin)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", entry.Name, err)
		}
		deck.Origin = o
	} else {
		deck.Origin = OriginFaithLeader
	}
	for _, ce := range entry.Cards {
		card, err := c.Card(ce.Name)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", entry.Name, err)
		}
		for i := 0; i < ce.Count; i++ {
			deck.Cards = append(deck.Cards, card)
		}
	}
	return deck, nil
}

// Card resolves a card name against custom cards, then built-ins.
func (c *Content) Card(name string) (*Card, error) {
	if card, ok := c.Cards[name]; ok {
		return card, nil
	}
	return FindCard(name)
}

// Origin resolves an origin name against the file's origins, then built-ins.
func (c *Content) Origin(name string) (Origin, error) {
	key := normalizeName(name)
	for n, o := range c.Origins {
		if normalizeName(n) == key {
			return o, nil
		}
	}
	return LookupOrigin(name)
}

// DeckByName returns the named deck.
func (c *Content) DeckByName(name string) (*Deck, error) {
	for _, d := range c.Decks {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("deck %q not found", name)
}

// DeckByNumber returns the Nth deck (1-indexed).
func (c *Content) DeckByNumber(n int) (*Deck, error) {
	if n < 1 || n > len(c.Decks) {
		return nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(c.Decks))
	}
	return c.Decks[n-1], nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the content file.
func DeckByNumber(path string, n int) (*Deck, error) {
	c, err := ParseContentFile(path)
	if err != nil {
		return nil, err
	}
	return c.DeckByNumber(n)
}

// --- Card specs ---

// Build converts a CardSpec into a Card.
func (s CardSpec) Build() (*Card, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("card without a name")
	}
	ct, err := parseNamed("card type", s.Type, CardTypeDiplomacy, CardTypeHostility, CardTypeManipulate)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", s.Name, err)
	}
	card := &Card{
		Name:        s.Name,
		Type:        ct,
		Cost:        Cost(s.Cost),
		Description: s.Description,
	}
	for i, es := range s.Effects {
		eff, err := es.Build()
		if err != nil {
			return nil, fmt.Errorf("card %q effect %d: %w", s.Name, i+1, err)
		}
		card.Effects = append(card.Effects, eff)
	}
	return card, nil
}

// Build converts an EffectSpec into one of the Effect variants.
func (s EffectSpec) Build() (Effect, error) {
	target := TargetOpponent
	if s.Target != "" {
		t, err := parseNamed("target", s.Target, TargetSelf, TargetOpponent, TargetAll, TargetRandom)
		if err != nil {
			return nil, err
		}
		target = t
	}

	switch normalizeName(s.Type) {
	case "damage":
		kind := DamageFixed
		if s.Kind != "" {
			k, err := parseNamed("damage kind", s.Kind, DamageFixed, DamageRandom, DamageEqualToComposure)
			if err != nil {
				return nil, err
			}
			kind = k
		}
		if kind == DamageRandom {
			if s.Max < s.Min {
				return nil, fmt.Errorf("random damage range %d-%d is empty", s.Min, s.Max)
			}
			if s.Min < 0 || s.Max > maxRandomDamage {
				return nil, fmt.Errorf("random damage range %d-%d must lie within 0-%d", s.Min, s.Max, maxRandomDamage)
			}
		}
		return Damage{Target: target, Kind: kind, Amount: s.Amount, Min: s.Min, Max: s.Max}, nil

	case "resource":
		k, err := parseNamed("resource kind", s.Kind,
			ResourceHealResolve, ResourceGainComposure, ResourceLoseComposure,
			ResourceConsumeAllComposure, ResourceComposureEqualToHostility,
			ResourceGainHostility, ResourceReduceHostility,
			ResourceGainActionPoints, ResourceGainActionPointsNextTurn)
		if err != nil {
			return nil, err
		}
		return ResourceChange{Target: target, Kind: k, Amount: s.Amount}, nil

	case "cards":
		k, err := parseNamed("card manipulation", s.Kind, ManipulateDraw, ManipulateDiscard, ManipulateExhaustSelf)
		if err != nil {
			return nil, err
		}
		return CardManipulation{Target: target, Kind: k, Amount: s.Amount}, nil

	case "status":
		st, err := ParseStatusType(s.Status)
		if err != nil {
			return nil, err
		}
		dur := DecreasePerTurn
		if s.Duration != "" {
			d, err := parseNamed("duration", s.Duration, DecreasePerTurn, RemoveEndOfTurn, Permanent)
			if err != nil {
				return nil, err
			}
			dur = d
		}
		return StatusApplication{Target: target, Status: st, Stacks: s.Stacks, Duration: dur}, nil

	default:
		return nil, fmt.Errorf("unknown effect type %q", s.Type)
	}
}

// parseNamed matches s against the String() of each candidate, ignoring
// case, spaces, underscores and hyphens.
func parseNamed[T fmt.Stringer](what, s string, candidates ...T) (T, error) {
	key := normalizeName(s)
	for _, c := range candidates {
		if normalizeName(c.String()) == key {
			return c, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", what, s)
}
