package log

import "fmt"

// EventType enumerates all observable battle events.
type EventType int

const (
	EventBattleStarted EventType = iota
	EventBattleEnded
	EventTurnStarted
	EventTurnEnded
	EventCardDrawn
	EventCardPlayed
	EventCardDiscarded
	EventCardExhausted
	EventStatusEffectApplied
	EventStatusEffectExpired
	EventResolveChanged
	EventComposureChanged
	EventHostilityChanged
	EventActionPointsChanged
	EventDeckShuffled
	EventCommandRejected
	EventEffectSkipped // unknown effect variant, resolved as a no-op
)

func (e EventType) String() string {
	switch e {
	case EventBattleStarted:
		return "BattleStarted"
	case EventBattleEnded:
		return "BattleEnded"
	case EventTurnStarted:
		return "TurnStarted"
	case EventTurnEnded:
		return "TurnEnded"
	case EventCardDrawn:
		return "CardDrawn"
	case EventCardPlayed:
		return "CardPlayed"
	case EventCardDiscarded:
		return "CardDiscarded"
	case EventCardExhausted:
		return "CardExhausted"
	case EventStatusEffectApplied:
		return "StatusEffectApplied"
	case EventStatusEffectExpired:
		return "StatusEffectExpired"
	case EventResolveChanged:
		return "ResolveChanged"
	case EventComposureChanged:
		return "ComposureChanged"
	case EventHostilityChanged:
		return "HostilityChanged"
	case EventActionPointsChanged:
		return "ActionPointsChanged"
	case EventDeckShuffled:
		return "DeckShuffled"
	case EventCommandRejected:
		return "CommandRejected"
	case EventEffectSkipped:
		return "EffectSkipped"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based, 0 during setup)
	Phase   string    // state machine phase name (e.g. "Player Turn")
	Player  int       // side the event concerns (0 = player, 1 = opponent)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Status  string    // status effect name (if applicable)
	Old     int       // previous value for *Changed events
	New     int       // new value for *Changed events
	Amount  int       // stacks, draw count, etc.
	Victory bool      // BattleEnded only
	Details string    // human-readable detail string
}

// Delta returns New-Old for *Changed events.
func (e GameEvent) Delta() int {
	return e.New - e.Old
}

// --- Helper constructors for common events ---

func NewBattleStartedEvent(sessionID string, player, opponent string) GameEvent {
	return GameEvent{
		Phase:   "Initialize",
		Type:    EventBattleStarted,
		Details: fmt.Sprintf("Battle %s: %s vs %s", sessionID, player, opponent),
	}
}

func NewBattleEndedEvent(turn int, victory bool, reason string) GameEvent {
	outcome := "defeat"
	if victory {
		outcome = "victory"
	}
	return GameEvent{
		Turn:    turn,
		Phase:   "Battle End",
		Type:    EventBattleEnded,
		Victory: victory,
		Details: fmt.Sprintf("Battle over: %s (%s)", outcome, reason),
	}
}

func NewTurnStartedEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTurnStarted,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, sideName(player)),
	}
}

func NewTurnEndedEvent(turn int, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Turn End",
		Player:  player,
		Type:    EventTurnEnded,
		Details: fmt.Sprintf("%s ends turn %d", sideName(player), turn),
	}
}

func NewCardDrawnEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCardDrawn,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", sideName(player), cardName),
	}
}

func NewCardPlayedEvent(turn int, phase string, player int, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCardPlayed,
		Card:    cardName,
		Amount:  cost,
		Details: fmt.Sprintf("%s plays %s (cost %d)", sideName(player), cardName, cost),
	}
}

func NewCardDiscardedEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCardDiscarded,
		Card:    cardName,
		Details: fmt.Sprintf("%s discards %s (%s)", sideName(player), cardName, reason),
	}
}

func NewCardExhaustedEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCardExhausted,
		Card:    cardName,
		Details: fmt.Sprintf("%s is exhausted", cardName),
	}
}

func NewStatusAppliedEvent(turn int, phase string, player int, status string, stacks int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatusEffectApplied,
		Status:  status,
		Amount:  stacks,
		Details: fmt.Sprintf("%s gains %d %s", sideName(player), stacks, status),
	}
}

func NewStatusExpiredEvent(turn int, phase string, player int, status string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventStatusEffectExpired,
		Status:  status,
		Details: fmt.Sprintf("%s's %s wears off", sideName(player), status),
	}
}

// NewStatChangeEvent builds one of the four *Changed events. stat is the
// display name ("Resolve", "Composure", "Hostility", "AP").
func NewStatChangeEvent(turn int, phase string, player int, t EventType, stat string, oldV, newV int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    t,
		Old:     oldV,
		New:     newV,
		Details: fmt.Sprintf("%s %s: %d → %d", sideName(player), stat, oldV, newV),
	}
}

func NewShuffleEvent(turn int, phase string, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDeckShuffled,
		Details: fmt.Sprintf("%s shuffled their deck", sideName(player)),
	}
}

func NewCommandRejectedEvent(turn int, phase string, player int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventCommandRejected,
		Details: fmt.Sprintf("%s: command rejected (%s)", sideName(player), reason),
	}
}

func NewEffectSkippedEvent(turn int, phase string, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventEffectSkipped,
		Card:    cardName,
		Details: fmt.Sprintf("%s: effect skipped (%s)", cardName, reason),
	}
}
