// Package actor implements the preparation pass that hosts run whenever an
// actor's base data changes.
package actor

//go:generate mockgen -destination=mock/mock_service.go -package=actormock github.com/KirkDiggler/bfrpg-rules/internal/orchestrators/actor Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
	"github.com/KirkDiggler/bfrpg-rules/internal/rules"
)

// Service defines the interface for actor operations
type Service interface {
	// PrepareActor recomputes derived fields in place and returns the sheet
	// summary and roll data for the actor
	PrepareActor(ctx context.Context, input *PrepareActorInput) (*PrepareActorOutput, error)
}

// Config holds the dependencies for the actor orchestrator
type Config struct {
	Deriver *rules.Deriver
	// SaveLabels maps each save key to its display name
	SaveLabels map[string]string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Deriver == nil {
		vb.RequiredField("Deriver")
	}
	for _, key := range bfrpg.Saves {
		errors.ValidateRequired("SaveLabels."+key, c.SaveLabels[key], vb)
	}

	return vb.Build()
}

type orchestrator struct {
	deriver    *rules.Deriver
	saveLabels map[string]string
}

// NewOrchestrator creates a new actor orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		deriver:    cfg.Deriver,
		saveLabels: cfg.SaveLabels,
	}, nil
}

// PrepareActor runs the deriver and assembles the sheet summary
func (o *orchestrator) PrepareActor(ctx context.Context, input *PrepareActorInput) (*PrepareActorOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}
	if input.Actor.System == nil {
		return nil, errors.InvalidArgumentf("actor %s has no system data", input.Actor.ID)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "prepare canceled")
	}

	actor := input.Actor
	o.deriver.Prepare(actor)

	var money map[string]*bfrpg.Field
	var saves map[string]*bfrpg.Field
	switch system := actor.System.(type) {
	case *bfrpg.Character:
		money = system.Money
		saves = system.Saves
	case *bfrpg.Monster:
		saves = system.Saves
	}

	rollData, err := rules.NewRollData(actor)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build roll data for actor %s", actor.ID)
	}

	inventory := rules.OrganizeItems(actor.Items, money)

	slog.Debug("Actor prepared",
		"actor_id", actor.ID,
		"kind", actor.Kind(),
		"items", len(actor.Items),
		"carried_weight", inventory.CarriedWeight,
	)

	return &PrepareActorOutput{
		Actor:     actor,
		Inventory: inventory,
		Saves:     o.labelSaves(saves),
		RollData:  rollData,
	}, nil
}

// labelSaves lists the saves present on the actor in sheet order
func (o *orchestrator) labelSaves(saves map[string]*bfrpg.Field) []LabelledSave {
	if len(saves) == 0 {
		return nil
	}

	out := make([]LabelledSave, 0, len(bfrpg.Saves))
	for _, key := range bfrpg.Saves {
		save, ok := saves[key]
		if !ok || save == nil {
			continue
		}
		out = append(out, LabelledSave{
			Key:   key,
			Label: o.saveLabels[key],
			Value: save.Value,
		})
	}
	return out
}
