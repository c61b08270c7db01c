package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "battle_over"
	Result *ResultView `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a simplified battle event for the client.
type EventView struct {
	Seq     int    `json:"seq,omitempty"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Status  string `json:"status,omitempty"`
	Old     int    `json:"old,omitempty"`
	New     int    `json:"new,omitempty"`
	Amount  int    `json:"amount,omitempty"`
	Victory bool   `json:"victory,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Card  string `json:"card,omitempty"`
	Cost  int    `json:"cost,omitempty"`
	Desc  string `json:"desc"`
}

// StateView is the battle state from one side's perspective.
type StateView struct {
	BattleID   string        `json:"battle_id"`
	Side       int           `json:"side"` // viewer's side
	You        CombatantView `json:"you"`
	Opponent   CombatantView `json:"opponent"`
	Turn       int           `json:"turn"`
	Phase      string        `json:"phase"`
	IsYourTurn bool          `json:"is_your_turn"`
}

// CombatantView shows one combatant's stats, zones and statuses.
type CombatantView struct {
	Name            string       `json:"name"`
	Origin          string       `json:"origin"`
	Resolve         int          `json:"resolve"`
	MaxResolve      int          `json:"max_resolve"`
	Composure       int          `json:"composure"`
	Hostility       int          `json:"hostility"`
	ActionPoints    int          `json:"action_points"`
	MaxActionPoints int          `json:"max_action_points"`
	BankedAP        int          `json:"banked_action_points,omitempty"`
	HandCount       int          `json:"hand_count"`
	Hand            []CardView   `json:"hand,omitempty"` // only for "you"
	DeckCount       int          `json:"deck_count"`
	DiscardCount    int          `json:"discard_count"`
	ExhaustCount    int          `json:"exhaust_count"`
	Statuses        []StatusView `json:"statuses,omitempty"`
}

// CardView describes a card in hand.
type CardView struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Cost        string `json:"cost"`
	Description string `json:"description,omitempty"`
	Playable    bool   `json:"playable"`
}

// StatusView describes one active status effect.
type StatusView struct {
	Name     string `json:"name"`
	Stacks   int    `json:"stacks"`
	Duration string `json:"duration"`
	Debuff   bool   `json:"debuff,omitempty"`
}

// ResultView is the BattleEnd payload.
type ResultView struct {
	Victory        bool   `json:"victory"`
	Decided        bool   `json:"decided"`
	Winner         int    `json:"winner"`
	Turns          int    `json:"turns"`
	FinalResolve   int    `json:"final_resolve"`
	FinalComposure int    `json:"final_composure"`
	FinalHostility int    `json:"final_hostility"`
	Reason         string `json:"reason"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action"
	Index int `json:"index,omitempty"`

	// For "join" (initial handshake)
	DeckNumber int `json:"deck_number,omitempty"`
}
