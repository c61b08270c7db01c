package game

// Built-in card definitions. Each constructor returns a fresh *Card.

// --- Faith Leader ---

func Blessing() *Card {
	return &Card{
		Name:        "Blessing",
		Type:        CardTypeDiplomacy,
		Cost:        Cost{Amount: 1},
		Description: "Deal damage equal to your Composure.",
		Effects: []Effect{
			Damage{Target: TargetOpponent, Kind: DamageEqualToComposure},
		},
	}
}

func Sermon() *Card {
	return &Card{
		Name:        "Sermon",
		Type:        CardTypeDiplomacy,
		Cost:        Cost{Amount: 1},
		Description: "Gain 3 Composure.",
		Effects: []Effect{
			ResourceChange{Target: TargetSelf, Kind: ResourceGainComposure, Amount: 3},
		},
	}
}

func PrayerCircle() *Card {
	return &Card{
		Name:        "Prayer Circle",
		Type:        CardTypeDiplomacy,
		Cost:        Cost{Amount: 2},
		Description: "Restore 5 Resolve. Gain 2 Regeneration.",
		Effects: []Effect{
			ResourceChange{Target: TargetSelf, Kind: ResourceHealResolve, Amount: 5},
			StatusApplication{Target: TargetSelf, Status: StatusRegeneration, Stacks: 2, Duration: DecreasePerTurn},
		},
	}
}

func Devotion() *Card {
	return &Card{
		Name:        "Devotion",
		Type:        CardTypeManipulate,
		Cost:        Cost{Amount: 2},
		Description: "Gain 1 Ritual. Exhaust.",
		Effects: []Effect{
			StatusApplication{Target: TargetSelf, Status: StatusRitual, Stacks: 1, Duration: Permanent},
			CardManipulation{Target: TargetSelf, Kind: ManipulateExhaustSelf},
		},
	}
}

// --- Nepo Baby ---

func BackroomDeal() *Card {
	return &Card{
		Name:        "Backroom Deal",
		Type:        CardTypeManipulate,
		Cost:        Cost{Amount: 1},
		Description: "Gain 2 AP next turn. Draw 1 card.",
		Effects: []Effect{
			ResourceChange{Target: TargetSelf, Kind: ResourceGainActionPointsNextTurn, Amount: 2},
			CardManipulation{Target: TargetSelf, Kind: ManipulateDraw, Amount: 1},
		},
	}
}

func TrustFund() *Card {
	return &Card{
		Name:        "Trust Fund",
		Type:        CardTypeManipulate,
		Cost:        Cost{Amount: 0},
		Description: "Gain 1 AP. Exhaust.",
		Effects: []Effect{
			ResourceChange{Target: TargetSelf, Kind: ResourceGainActionPoints, Amount: 1},
			CardManipulation{Target: TargetSelf, Kind: ManipulateExhaustSelf},
		},
	}
}

func LawyerUp() *Card {
	return &Card{
		Name:        "Lawyer Up",
		Type:        CardTypeDiplomacy,
		Cost:        Cost{Amount: 1},
		Description: "Gain 2 Plated.",
		Effects: []Effect{
			StatusApplication{Target: TargetSelf, Status: StatusPlated, Stacks: 2, Duration: DecreasePerTurn},
		},
	}
}

func NameDrop() *Card {
	return &Card{
		Name:        "Name Drop",
		Type:        CardTypeHostility,
		Cost:        Cost{Amount: 1},
		Description: "Deal 4 damage. Apply 1 Weakened.",
		Effects: []Effect{
			Damage{Target: TargetOpponent, Kind: DamageFixed, Amount: 4},
			StatusApplication{Target: TargetOpponent, Status: StatusWeakened, Stacks: 1, Duration: DecreasePerTurn},
		},
	}
}

// --- Actor ---

func AllOrNothing() *Card {
	return &Card{
		Name:        "All or Nothing",
		Type:        CardTypeHostility,
		Cost:        Cost{Amount: 2},
		Description: "Deal 0-12 damage.",
		Effects: []Effect{
			Damage{Target: TargetOpponent, Kind: DamageRandom, Min: 0, Max: 12},
		},
	}
}

func EgoTrip() *Card {
	return &Card{
		Name:        "Ego Trip",
		Type:        CardTypeHostility,
		Cost:        Cost{Amount: 1},
		Description: "Gain 2 Hostility. Set Composure equal to Hostility.",
		Effects: []Effect{
			ResourceChange{Target: TargetSelf, Kind: ResourceGainHostility, Amount: 2},
			ResourceChange{Target: TargetSelf, Kind: ResourceComposureEqualToHostility},
		},
	}
}

func MethodActing() *Card {
	return &Card{
		Name:        "Method Acting",
		Type:        CardTypeManipulate,
		Cost:        Cost{Amount: 2},
		Description: "Gain 1 Intangible. Exhaust.",
		Effects: []Effect{
			StatusApplication{Target: TargetSelf, Status: StatusIntangible, Stacks: 1, Duration: Permanent},
			CardManipulation{Target: TargetSelf, Kind: ManipulateExhaustSelf},
		},
	}
}

func SceneStealer() *Card {
	return &Card{
		Name:        "Scene Stealer",
		Type:        CardTypeHostility,
		Cost:        Cost{All: true},
		Description: "Spend all AP. Deal 7 damage. Lose all Composure.",
		Effects: []Effect{
			Damage{Target: TargetOpponent, Kind: DamageFixed, Amount: 7},
			ResourceChange{Target: TargetSelf, Kind: ResourceConsumeAllComposure},
		},
	}
}

// --- Neutral ---

func Heckle() *Card {
	return &Card{
		Name:        "Heckle",
		Type:        CardTypeHostility,
		Cost:        Cost{Amount: 1},
		Description: "Deal 6 damage.",
		Effects: []Effect{
			Damage{Target: TargetOpponent, Kind: DamageFixed, Amount: 6},
		},
	}
}

func Compliment() *Card {
	return &Card{
		Name:        "Compliment",
		Type:        CardTypeDiplomacy,
		Cost:        Cost{Amount: 1},
		Description: "Gain 2 Composure. Reduce Hostility by 1.",
		Effects: []Effect{
			ResourceChange{Target: TargetSelf, Kind: ResourceGainComposure, Amount: 2},
			ResourceChange{Target: TargetSelf, Kind: ResourceReduceHostility, Amount: 1},
		},
	}
}

func SmearCampaign() *Card {
	return &Card{
		Name:        "Smear Campaign",
		Type:        CardTypeHostility,
		Cost:        Cost{Amount: 2},
		Description: "Apply 3 Scandal.",
		Effects: []Effect{
			StatusApplication{Target: TargetOpponent, Status: StatusScandal, Stacks: 3, Duration: DecreasePerTurn},
		},
	}
}

func LeakedMemo() *Card {
	return &Card{
		Name:        "Leaked Memo",
		Type:        CardTypeManipulate,
		Cost:        Cost{Amount: 1},
		Description: "Opponent discards 1 card at random. Draw 1 card.",
		Effects: []Effect{
			CardManipulation{Target: TargetOpponent, Kind: ManipulateDiscard, Amount: 1},
			CardManipulation{Target: TargetSelf, Kind: ManipulateDraw, Amount: 1},
		},
	}
}

func Filibuster() *Card {
	return &Card{
		Name:        "Filibuster",
		Type:        CardTypeManipulate,
		Cost:        Cost{Amount: 1},
		Description: "Apply 1 Entangled and 1 Silenced.",
		Effects: []Effect{
			StatusApplication{Target: TargetOpponent, Status: StatusEntangled, Stacks: 1, Duration: DecreasePerTurn},
			StatusApplication{Target: TargetOpponent, Status: StatusSilenced, Stacks: 1, Duration: DecreasePerTurn},
		},
	}
}

func DeepBreath() *Card {
	return &Card{
		Name:        "Deep Breath",
		Type:        CardTypeDiplomacy,
		Cost:        Cost{Amount: 1},
		Description: "Reduce Hostility by 2. Restore 3 Resolve.",
		Effects: []Effect{
			ResourceChange{Target: TargetSelf, Kind: ResourceReduceHostility, Amount: 2},
			ResourceChange{Target: TargetSelf, Kind: ResourceHealResolve, Amount: 3},
		},
	}
}

func SpinDoctor() *Card {
	return &Card{
		Name:        "Spin Doctor",
		Type:        CardTypeManipulate,
		Cost:        Cost{Amount: 1},
		Description: "Gain 2 Energized. Gain 1 Focus.",
		Effects: []Effect{
			StatusApplication{Target: TargetSelf, Status: StatusEnergized, Stacks: 2, Duration: DecreasePerTurn},
			StatusApplication{Target: TargetSelf, Status: StatusFocus, Stacks: 1, Duration: DecreasePerTurn},
		},
	}
}

func PepTalk() *Card {
	return &Card{
		Name:        "Pep Talk",
		Type:        CardTypeDiplomacy,
		Cost:        Cost{Amount: 1},
		Description: "Gain 1 Strength and 1 Dexterity.",
		Effects: []Effect{
			StatusApplication{Target: TargetSelf, Status: StatusStrength, Stacks: 1, Duration: Permanent},
			StatusApplication{Target: TargetSelf, Status: StatusDexterity, Stacks: 1, Duration: Permanent},
		},
	}
}

func CheapShot() *Card {
	return &Card{
		Name:        "Cheap Shot",
		Type:        CardTypeHostility,
		Cost:        Cost{Amount: 1},
		Description: "Become Exposed, then deal 3 damage and apply 1 Vulnerable.",
		Effects: []Effect{
			StatusApplication{Target: TargetSelf, Status: StatusExposed, Stacks: 1, Duration: RemoveEndOfTurn},
			Damage{Target: TargetOpponent, Kind: DamageFixed, Amount: 3},
			StatusApplication{Target: TargetOpponent, Status: StatusVulnerable, Stacks: 1, Duration: DecreasePerTurn},
		},
	}
}

func ThickSkin() *Card {
	return &Card{
		Name:        "Thick Skin",
		Type:        CardTypeDiplomacy,
		Cost:        Cost{Amount: 1},
		Description: "Gain 2 Thorns.",
		Effects: []Effect{
			StatusApplication{Target: TargetSelf, Status: StatusThorns, Stacks: 2, Duration: DecreasePerTurn},
		},
	}
}

func StageFright() *Card {
	return &Card{
		Name:        "Stage Fright",
		Type:        CardTypeManipulate,
		Cost:        Cost{Amount: 1},
		Description: "Apply 2 Frail. Opponent loses 2 Composure.",
		Effects: []Effect{
			StatusApplication{Target: TargetOpponent, Status: StatusFrail, Stacks: 2, Duration: DecreasePerTurn},
			ResourceChange{Target: TargetOpponent, Kind: ResourceLoseComposure, Amount: 2},
		},
	}
}

func WildAccusation() *Card {
	return &Card{
		Name:        "Wild Accusation",
		Type:        CardTypeHostility,
		Cost:        Cost{Amount: 1},
		Description: "Deal 8 damage to a random combatant.",
		Effects: []Effect{
			Damage{Target: TargetRandom, Kind: DamageFixed, Amount: 8},
		},
	}
}

func PublicDebate() *Card {
	return &Card{
		Name:        "Public Debate",
		Type:        CardTypeHostility,
		Cost:        Cost{Amount: 2},
		Description: "Deal 5 damage to both combatants. Both gain 1 Hostility.",
		Effects: []Effect{
			Damage{Target: TargetAll, Kind: DamageFixed, Amount: 5},
			ResourceChange{Target: TargetAll, Kind: ResourceGainHostility, Amount: 1},
		},
	}
}
