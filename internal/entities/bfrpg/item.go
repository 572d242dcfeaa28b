package bfrpg

// Item is a possession or structural component owned by exactly one Actor
type Item struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Type   ItemKind `json:"type"`
	System ItemData `json:"system"`
}

// ItemData holds the union of fields used by the item kinds. Fields a kind
// does not use stay zero and are omitted when encoded.
type ItemData struct {
	Description  string    `json:"description,omitempty"`
	Weight       Field     `json:"weight,omitzero"`
	Quantity     Field     `json:"quantity,omitzero"`
	Formula      TextField `json:"formula,omitzero"`
	TargetNumber TextField `json:"targetNumber,omitzero"`
	RollUnder    FlagField `json:"rollUnder,omitzero"`
	BonusAb      Field     `json:"bonusAb,omitzero"`
	SpellLevel   Field     `json:"spellLevel,omitzero"`
	Prepared     Field     `json:"prepared,omitzero"`

	// floor and wall
	Material  TextField `json:"material,omitzero"`
	Area      Field     `json:"area,omitzero"`
	Height    Field     `json:"height,omitzero"`
	Thickness Field     `json:"thickness,omitzero"`
	Hardness  Field     `json:"hardness,omitzero"` // derived
	Price     Field     `json:"price,omitzero"`    // derived
	Floor     *Field    `json:"floor,omitempty"` // nil when the wall is unassigned
}
