package roll

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/bfrpg-rules/internal/engine"
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	rollrules "github.com/KirkDiggler/bfrpg-rules/internal/roll"
)

// ChatMessage is the record a roll workflow produces for the host to post
type ChatMessage struct {
	ID      string
	Speaker core.Entity
	// Flavor is the headline, one entry per line
	Flavor []string
	// Content is body text for description-only messages
	Content string
	// Roll is nil for description-only messages
	Roll *engine.Result
	// Outcome is unclassified when the roll has no target number
	Outcome rollrules.Outcome
	// Warnings hold recoverable problems, such as a target number that
	// could not be resolved
	Warnings  []string
	CreatedAt time.Time
}

// RollFormulaInput defines the request for a direct formula roll
type RollFormulaInput struct {
	Actor   *bfrpg.Actor
	Formula string
	Label   string
	// TargetNumber is a literal or a formula; empty means no target
	TargetNumber string
	RollUnder    bool
}

// RollFormulaOutput defines the response for a direct formula roll
type RollFormulaOutput struct {
	Message *ChatMessage
}

// RollItemInput defines the request for rolling an owned item
type RollItemInput struct {
	Actor  *bfrpg.Actor
	ItemID string
}

// RollItemOutput defines the response for rolling an owned item
type RollItemOutput struct {
	Message *ChatMessage
}

// RollAttackInput defines the request for a weapon attack
type RollAttackInput struct {
	Actor    *bfrpg.Actor
	WeaponID string
	// Attack is bfrpg.AttackMelee or bfrpg.AttackRanged
	Attack string
	Label  string
}

// RollAttackOutput defines the response for a weapon attack
type RollAttackOutput struct {
	Message *ChatMessage
}

// RollInitiativeInput defines the request for an initiative roll
type RollInitiativeInput struct {
	Actor *bfrpg.Actor
}

// RollInitiativeOutput defines the response for an initiative roll
type RollInitiativeOutput struct {
	Message    *ChatMessage
	Initiative int
}

// RollHitPointsInput defines the request for rolling a monster's hit points
type RollHitPointsInput struct {
	Actor *bfrpg.Actor
}

// RollHitPointsOutput defines the response for rolling a monster's hit
// points. When automatic rolls are disabled Rolled is false, Message is nil
// and HitPoints holds the stored values.
type RollHitPointsOutput struct {
	Message   *ChatMessage
	HitPoints bfrpg.Pool
	Rolled    bool
}
