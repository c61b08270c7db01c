package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"Blessing":        Blessing,
	"Sermon":          Sermon,
	"Prayer Circle":   PrayerCircle,
	"Devotion":        Devotion,
	"Backroom Deal":   BackroomDeal,
	"Trust Fund":      TrustFund,
	"Lawyer Up":       LawyerUp,
	"Name Drop":       NameDrop,
	"All or Nothing":  AllOrNothing,
	"Ego Trip":        EgoTrip,
	"Method Acting":   MethodActing,
	"Scene Stealer":   SceneStealer,
	"Heckle":          Heckle,
	"Compliment":      Compliment,
	"Smear Campaign":  SmearCampaign,
	"Leaked Memo":     LeakedMemo,
	"Filibuster":      Filibuster,
	"Deep Breath":     DeepBreath,
	"Spin Doctor":     SpinDoctor,
	"Pep Talk":        PepTalk,
	"Cheap Shot":      CheapShot,
	"Thick Skin":      ThickSkin,
	"Stage Fright":    StageFright,
	"Wild Accusation": WildAccusation,
	"Public Debate":   PublicDebate,
}

// LookupCard looks up a card by name and returns a new instance.
// Panics if the card is not found.
func LookupCard(name string) *Card {
	ctor, ok := CardRegistry[name]
	if !ok {
		panic(fmt.Sprintf("card not found in registry: %q", name))
	}
	return ctor()
}

// FindCard is LookupCard without the panic.
func FindCard(name string) (*Card, error) {
	ctor, ok := CardRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown card %q", name)
	}
	return ctor(), nil
}

// RegisteredCardNames returns all built-in card names, sorted.
func RegisteredCardNames() []string {
	names := make([]string, 0, len(CardRegistry))
	for n := range CardRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
