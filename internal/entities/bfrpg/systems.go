package bfrpg

// System is the kind-specific payload of an Actor. Each concrete type maps to
// exactly one Kind.
type System interface {
	Kind() Kind
}

// Ability is one of the six character ability scores
type Ability struct {
	Value Number `json:"value"`
	Bonus int    `json:"bonus"` // derived
}

// Character is the payload of a player character
type Character struct {
	Abilities   map[string]*Ability `json:"abilities,omitempty"`
	Saves       map[string]*Field   `json:"saves,omitempty"`
	Money       map[string]*Field   `json:"money,omitempty"`
	Level       Field               `json:"level"`
	AttackBonus Field               `json:"attackBonus"`
	InitBonus   Field               `json:"initBonus,omitzero"`
	HitPoints   Pool                `json:"hitPoints,omitzero"`
	ArmorClass  Field               `json:"armorClass,omitzero"`
	Biography   string              `json:"biography,omitempty"`
}

// Kind implements System
func (c *Character) Kind() Kind { return KindCharacter }

// HitDice describes a monster's hit dice, e.g. 3d8+1
type HitDice struct {
	Number Number `json:"number"`
	Size   string `json:"size"`
	Mod    Number `json:"mod"`
}

// Monster is the payload of a monster or NPC
type Monster struct {
	HitDice        HitDice           `json:"hitDice"`
	SpecialAbility Field             `json:"specialAbility"`
	XP             Field             `json:"xp"`          // derived
	AttackBonus    Field             `json:"attackBonus"` // derived
	HitPoints      Pool              `json:"hitPoints,omitzero"`
	InitBonus      Field             `json:"initBonus,omitzero"`
	ArmorClass     Field             `json:"armorClass,omitzero"`
	Saves          map[string]*Field `json:"saves,omitempty"`
	Biography      string            `json:"biography,omitempty"`
}

// Kind implements System
func (m *Monster) Kind() Kind { return KindMonster }

// SiegeEngine is the payload of a siege engine. It has no derived fields.
type SiegeEngine struct {
	AttackBonus Field  `json:"attackBonus,omitzero"`
	RangeBonus  Field  `json:"rangeBonus,omitzero"`
	HitPoints   Pool   `json:"hitPoints,omitzero"`
	InitBonus   Field  `json:"initBonus,omitzero"`
	Biography   string `json:"biography,omitempty"`
}

// Kind implements System
func (s *SiegeEngine) Kind() Kind { return KindSiegeEngine }

// Stronghold is the payload of a stronghold. Its floors and walls are owned
// Items; height, cost and build time are derived from them.
type Stronghold struct {
	CostMultiplier Field  `json:"costMultiplier"`
	Workers        Field  `json:"workers"`
	Height         Field  `json:"height"`    // derived
	Cost           Field  `json:"cost"`      // derived
	BuildTime      Field  `json:"buildTime"` // derived
	InitBonus      Field  `json:"initBonus,omitzero"`
	Biography      string `json:"biography,omitempty"`
}

// Kind implements System
func (s *Stronghold) Kind() Kind { return KindStronghold }

// VehicleHitPoints holds per-side hit points plus the derived aggregate
type VehicleHitPoints struct {
	Value     Number `json:"value"` // derived
	Max       Number `json:"max"`   // derived
	Forward   Pool   `json:"forward"`
	Aft       Pool   `json:"aft"`
	Port      Pool   `json:"port"`
	Starboard Pool   `json:"starboard"`
}

// Sides returns the four directional pools keyed by side name
func (h *VehicleHitPoints) Sides() map[string]Pool {
	return map[string]Pool{
		SideForward:   h.Forward,
		SideAft:       h.Aft,
		SidePort:      h.Port,
		SideStarboard: h.Starboard,
	}
}

// Move is a vehicle's movement rate; Current is derived from damage
type Move struct {
	Value   Number `json:"value"`
	Current Number `json:"current"` // derived
}

// Vehicle is the payload of a ship or wagon
type Vehicle struct {
	HitPoints   VehicleHitPoints `json:"hitPoints"`
	Move        Move             `json:"move"`
	AttackBonus Field            `json:"attackBonus,omitzero"`
	InitBonus   Field            `json:"initBonus,omitzero"`
	Biography   string           `json:"biography,omitempty"`
}

// Kind implements System
func (v *Vehicle) Kind() Kind { return KindVehicle }

// NewSystem returns an empty payload for kind, or nil if the kind is unknown
func NewSystem(kind Kind) System {
	switch kind {
	case KindCharacter:
		return &Character{}
	case KindMonster:
		return &Monster{}
	case KindSiegeEngine:
		return &SiegeEngine{}
	case KindStronghold:
		return &Stronghold{}
	case KindVehicle:
		return &Vehicle{}
	default:
		return nil
	}
}
