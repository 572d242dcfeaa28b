package bfrpg

// Kind identifies the actor subtype. It never changes after creation.
type Kind string

// Actor kinds
const (
	KindCharacter   Kind = "character"
	KindMonster     Kind = "monster"
	KindSiegeEngine Kind = "siegeEngine"
	KindStronghold  Kind = "stronghold"
	KindVehicle     Kind = "vehicle"
)

// ItemKind identifies the item subtype
type ItemKind string

// Item kinds
const (
	ItemKindItem    ItemKind = "item"
	ItemKindWeapon  ItemKind = "weapon"
	ItemKindArmor   ItemKind = "armor"
	ItemKindSpell   ItemKind = "spell"
	ItemKindFeature ItemKind = "feature"
	ItemKindFloor   ItemKind = "floor"
	ItemKindWall    ItemKind = "wall"
)

// Ability keys
const (
	AbilityStrength     = "str"
	AbilityDexterity    = "dex"
	AbilityConstitution = "con"
	AbilityIntelligence = "int"
	AbilityWisdom       = "wis"
	AbilityCharisma     = "cha"
)

// Abilities lists the six ability keys in sheet order
var Abilities = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// Save keys
const (
	SaveDeath     = "death"
	SaveWands     = "wands"
	SaveParalysis = "paralysis"
	SaveBreath    = "breath"
	SaveSpells    = "spells"
)

// Saves lists the five save keys in sheet order
var Saves = []string{SaveDeath, SaveWands, SaveParalysis, SaveBreath, SaveSpells}

// Money denominations
const (
	CoinPlatinum = "pp"
	CoinGold     = "gp"
	CoinElectrum = "ep"
	CoinSilver   = "sp"
	CoinCopper   = "cp"
)

// Coins lists the five denominations
var Coins = []string{CoinPlatinum, CoinGold, CoinElectrum, CoinSilver, CoinCopper}

// Floor materials
const (
	MaterialFloor      = "floor"
	MaterialRoofThatch = "roofThatch"
	MaterialRoofWood   = "roofWood"
	MaterialRoofSlate  = "roofSlate"
)

// Wall materials
const (
	MaterialStoneHard = "stoneHard"
	MaterialStoneSoft = "stoneSoft"
	MaterialBrick     = "brick"
	MaterialWood      = "wood"
)

// Vehicle sides
const (
	SideForward   = "forward"
	SideAft       = "aft"
	SidePort      = "port"
	SideStarboard = "starboard"
)

// Attack types for weapon rolls
const (
	AttackMelee  = "melee"
	AttackRanged = "ranged"
)

// AttackKinds lists the attack types a weapon roll accepts
var AttackKinds = []string{AttackMelee, AttackRanged}
