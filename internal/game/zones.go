package game

import "math/rand"

// DefaultMaxHandSize is the hand limit when none is configured.
const DefaultMaxHandSize = 10

// DrawResult reports the outcome of a Draw call.
type DrawResult struct {
	Drawn     []*CardInstance
	Reclaimed int  // cards moved from Discard back into Deck
	HandFull  bool // the draw stopped at MaxHandSize
}

// CardZones owns one combatant's Deck, Hand, Discard and Exhaust piles.
// Every operation moves cards between piles; none creates or destroys one.
type CardZones struct {
	Deck        []*CardInstance // top of deck is index 0
	Hand        []*CardInstance
	Discard     []*CardInstance
	Exhaust     []*CardInstance
	MaxHandSize int

	rng *rand.Rand
}

// NewCardZones creates zones with the given cards as the deck, in order.
func NewCardZones(deck []*CardInstance, maxHandSize int, rng *rand.Rand) *CardZones {
	if maxHandSize <= 0 {
		maxHandSize = DefaultMaxHandSize
	}
	return &CardZones{
		Deck:        append([]*CardInstance(nil), deck...),
		MaxHandSize: maxHandSize,
		rng:         rng,
	}
}

// Total returns the number of cards across all four piles.
func (z *CardZones) Total() int {
	return len(z.Deck) + len(z.Hand) + len(z.Discard) + len(z.Exhaust)
}

// HandFull reports whether another draw would exceed MaxHandSize.
func (z *CardZones) HandFull() bool {
	return len(z.Hand) >= z.MaxHandSize
}

// Draw moves up to n cards from the top of the deck into the hand. An empty
// deck is refilled from the discard pile (then shuffled) once per need. The
// draw stops early when the hand is full or both piles are empty.
func (z *CardZones) Draw(n int) DrawResult {
	var res DrawResult
	for i := 0; i < n; i++ {
		if z.HandFull() {
			res.HandFull = true
			break
		}
		if len(z.Deck) == 0 {
			if len(z.Discard) == 0 {
				break
			}
			res.Reclaimed += z.ReclaimDiscardIntoDeck()
			z.ShuffleDeck()
		}
		card := z.Deck[0]
		z.Deck = z.Deck[1:]
		z.Hand = append(z.Hand, card)
		res.Drawn = append(res.Drawn, card)
	}
	return res
}

// Play moves a card from the hand to the discard pile.
func (z *CardZones) Play(card *CardInstance) bool {
	if !removeCard(&z.Hand, card) {
		return false
	}
	z.Discard = append(z.Discard, card)
	return true
}

// DiscardCard moves a card from the hand to the discard pile.
func (z *CardZones) DiscardCard(card *CardInstance) bool {
	return z.Play(card)
}

// DiscardHand moves the whole hand to the discard pile.
func (z *CardZones) DiscardHand() []*CardInstance {
	discarded := z.Hand
	z.Discard = append(z.Discard, discarded...)
	z.Hand = nil
	return discarded
}

// ExhaustCard removes a card from play permanently. The card may be in the
// hand or the discard pile.
func (z *CardZones) ExhaustCard(card *CardInstance) bool {
	if removeCard(&z.Hand, card) || removeCard(&z.Discard, card) {
		z.Exhaust = append(z.Exhaust, card)
		return true
	}
	return false
}

// ShuffleDeck permutes the deck uniformly (Fisher–Yates).
func (z *CardZones) ShuffleDeck() {
	for i := len(z.Deck) - 1; i > 0; i-- {
		j := z.rng.Intn(i + 1)
		z.Deck[i], z.Deck[j] = z.Deck[j], z.Deck[i]
	}
}

// ReclaimDiscardIntoDeck appends the discard pile to the deck and returns how
// many cards moved. It does not shuffle.
func (z *CardZones) ReclaimDiscardIntoDeck() int {
	n := len(z.Discard)
	z.Deck = append(z.Deck, z.Discard...)
	z.Discard = nil
	return n
}

// RandomHandCard returns a uniformly chosen hand card, or nil.
func (z *CardZones) RandomHandCard() *CardInstance {
	if len(z.Hand) == 0 {
		return nil
	}
	return z.Hand[z.rng.Intn(len(z.Hand))]
}

// Contains reports which pile holds card.
func (z *CardZones) Contains(card *CardInstance) (ZoneType, bool) {
	for zt, pile := range [...][]*CardInstance{z.Deck, z.Hand, z.Discard, z.Exhaust} {
		for _, c := range pile {
			if c == card {
				return ZoneType(zt), true
			}
		}
	}
	return 0, false
}

func removeCard(pile *[]*CardInstance, card *CardInstance) bool {
	for i, c := range *pile {
		if c == card {
			*pile = append((*pile)[:i], (*pile)[i+1:]...)
			return true
		}
	}
	return false
}
