package actor

import (
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/rules"
)

// PrepareActorInput defines the request for a preparation pass
type PrepareActorInput struct {
	Actor *bfrpg.Actor
}

// PrepareActorOutput defines the response for a preparation pass
type PrepareActorOutput struct {
	// Actor is the input actor with its derived fields recomputed
	Actor     *bfrpg.Actor
	Inventory *rules.Inventory
	// Saves is empty for kinds without saving throws
	Saves    []LabelledSave
	RollData *rules.RollData
}

// LabelledSave is a saving throw with its configured display name
type LabelledSave struct {
	Key   string       `json:"key"`
	Label string       `json:"label"`
	Value bfrpg.Number `json:"value"`
}
