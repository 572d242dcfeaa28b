package bfrpg

import (
	"encoding/json"
	"fmt"
)

// Actor is a game entity with a kind-specific System payload and the Items
// it owns. The kind is fixed by the System's concrete type.
type Actor struct {
	ID     string
	Name   string
	System System
	Items  []*Item
}

// Kind returns the actor kind, or "" when no System is set
func (a *Actor) Kind() Kind {
	if a.System == nil {
		return ""
	}
	return a.System.Kind()
}

// GetID returns the actor's ID
func (a *Actor) GetID() string {
	return a.ID
}

// GetType returns the actor kind as the entity type
func (a *Actor) GetType() string {
	return string(a.Kind())
}

// Character returns the System as a Character, or nil for other kinds
func (a *Actor) Character() *Character {
	c, _ := a.System.(*Character)
	return c
}

// Monster returns the System as a Monster, or nil for other kinds
func (a *Actor) Monster() *Monster {
	m, _ := a.System.(*Monster)
	return m
}

// Item returns the owned item with the given ID
func (a *Actor) Item(id string) (*Item, bool) {
	for _, item := range a.Items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// ItemByName returns the first owned item with the given name
func (a *Actor) ItemByName(name string) (*Item, bool) {
	for _, item := range a.Items {
		if item.Name == name {
			return item, true
		}
	}
	return nil, false
}

// ItemsOfKind returns the owned items of one kind in their stored order
func (a *Actor) ItemsOfKind(kind ItemKind) []*Item {
	var out []*Item
	for _, item := range a.Items {
		if item.Type == kind {
			out = append(out, item)
		}
	}
	return out
}

type actorJSON struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Type   Kind            `json:"type"`
	System json.RawMessage `json:"system,omitempty"`
	Items  []*Item         `json:"items,omitempty"`
}

// MarshalJSON writes the actor with its kind under "type"
func (a *Actor) MarshalJSON() ([]byte, error) {
	out := actorJSON{
		ID:    a.ID,
		Name:  a.Name,
		Type:  a.Kind(),
		Items: a.Items,
	}
	if a.System != nil {
		raw, err := json.Marshal(a.System)
		if err != nil {
			return nil, err
		}
		out.System = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON selects the System type from "type". An unknown kind is an
// error since nothing downstream can interpret its payload.
func (a *Actor) UnmarshalJSON(data []byte) error {
	var in actorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	system := NewSystem(in.Type)
	if system == nil {
		return fmt.Errorf("unknown actor type %q", in.Type)
	}
	if len(in.System) > 0 {
		if err := json.Unmarshal(in.System, system); err != nil {
			return fmt.Errorf("decode %s system: %w", in.Type, err)
		}
	}

	a.ID = in.ID
	a.Name = in.Name
	a.System = system
	a.Items = in.Items
	return nil
}
