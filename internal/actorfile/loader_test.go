package actorfile_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/bfrpg-rules/internal/actorfile"
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
	"github.com/KirkDiggler/bfrpg-rules/internal/rules"
	"github.com/KirkDiggler/bfrpg-rules/internal/testutils/builders"
)

const fighterJSON = `{
  "id": "a1",
  "name": "Fighter",
  "type": "character",
  "system": {
    "abilities": {"str": {"value": 16}, "dex": {"value": "13"}},
    "level": {"value": 2},
    "attackBonus": {"value": 1}
  },
  "items": [
    {"id": "i1", "name": "Longsword", "type": "weapon", "system": {"weight": {"value": 4}, "bonusAb": {"value": 1}}}
  ]
}`

const goblinYAML = `
id: m1
name: Goblin
type: monster
system:
  hitDice:
    number: 1
    size: d6
    mod: -1
  specialAbility:
    value: 0
items:
  - id: i2
    name: Spear
    type: weapon
    system:
      weight:
        value: 5
`

type LoaderTestSuite struct {
	suite.Suite
	fs     afero.Fs
	loader *actorfile.Loader
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}

func (s *LoaderTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
	s.loader = actorfile.NewLoader(s.fs)
}

func (s *LoaderTestSuite) write(path, content string) {
	s.Require().NoError(afero.WriteFile(s.fs, path, []byte(content), 0o644))
}

func (s *LoaderTestSuite) TestLoadJSON() {
	s.write("/actors/fighter.json", fighterJSON)

	actor, err := s.loader.Load("/actors/fighter.json")
	s.Require().NoError(err)

	s.Equal("a1", actor.ID)
	s.Equal(bfrpg.KindCharacter, actor.Kind())
	s.Equal(bfrpg.Number(13), actor.Character().Abilities[bfrpg.AbilityDexterity].Value)
	s.Require().Len(actor.Items, 1)
	s.Equal(bfrpg.ItemKindWeapon, actor.Items[0].Type)
}

func (s *LoaderTestSuite) TestLoadYAML() {
	s.write("/actors/goblin.yml", goblinYAML)

	actor, err := s.loader.Load("/actors/goblin.yml")
	s.Require().NoError(err)

	monster := actor.Monster()
	s.Require().NotNil(monster)
	s.Equal(bfrpg.HitDice{Number: 1, Size: "d6", Mod: -1}, monster.HitDice)
	s.Equal("Spear", actor.Items[0].Name)
	s.Equal(bfrpg.Number(5), actor.Items[0].System.Weight.Value)
}

func (s *LoaderTestSuite) TestLoadErrors() {
	s.write("/actors/notes.txt", "hello")
	s.write("/actors/broken.json", `{"type": "character", "system": [`)
	s.write("/actors/dragon.yaml", "type: dragon\n")
	s.write("/actors/tabs.yaml", "id: [unclosed\n")

	testCases := []struct {
		name  string
		path  string
		check func(error) bool
	}{
		{name: "missing file", path: "/actors/none.json", check: errors.IsNotFound},
		{name: "unsupported extension", path: "/actors/notes.txt", check: errors.IsInvalidArgument},
		{name: "malformed json", path: "/actors/broken.json", check: errors.IsInvalidArgument},
		{name: "unknown actor type", path: "/actors/dragon.yaml", check: errors.IsInvalidArgument},
		{name: "malformed yaml", path: "/actors/tabs.yaml", check: errors.IsInvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			actor, err := s.loader.Load(tc.path)
			s.Error(err)
			s.Nil(actor)
			s.True(tc.check(err), "got %v", err)
		})
	}
}

func (s *LoaderTestSuite) TestSaveRoundTrip() {
	original := builders.NewVehicleBuilder().WithSide(bfrpg.SideAft, 3, 10).Build()

	for _, path := range []string{"/out/ship.json", "/out/ship.yaml"} {
		s.Run(path, func() {
			s.Require().NoError(s.loader.Save(path, original))

			loaded, err := s.loader.Load(path)
			s.Require().NoError(err)
			s.Equal(original.ID, loaded.ID)
			s.Equal(original.System, loaded.System)
		})
	}
}

const hostFighterJSON = `{
  "id": "a7",
  "name": "Aldric",
  "type": "character",
  "img": "icons/fighter.png",
  "flags": {"core": {"sheet.class": "bfrpg.CharacterSheet"}},
  "system": {
    "abilities": {"str": {"value": 16, "bonus": 0}, "dex": {"value": "13"}},
    "xp": {"value": 4500},
    "class": {"value": "Fighter"},
    "level": {"value": 3},
    "attackBonus": {"value": 2}
  },
  "items": [
    {"id": "w1", "name": "Longsword", "type": "weapon", "sort": 100,
     "system": {"weight": {"value": 4}, "damage": {"value": "1d8"}, "range": {"value": ""}}}
  ]
}`

func (s *LoaderTestSuite) TestSaveKeepsFieldsOutsideTheModel() {
	s.write("/actors/aldric.json", hostFighterJSON)

	actor, err := s.loader.Load("/actors/aldric.json")
	s.Require().NoError(err)
	rules.NewDeriver().Prepare(actor)
	s.Require().NoError(s.loader.Save("/actors/aldric.json", actor))

	data, err := afero.ReadFile(s.fs, "/actors/aldric.json")
	s.Require().NoError(err)
	s.True(gjson.ValidBytes(data))

	doc := gjson.ParseBytes(data)
	s.Equal("icons/fighter.png", doc.Get("img").String())
	s.Equal("bfrpg.CharacterSheet", doc.Get(`flags.core.sheet\.class`).String())
	s.Equal(int64(4500), doc.Get("system.xp.value").Int())
	s.Equal("Fighter", doc.Get("system.class.value").String())
	s.Equal(int64(100), doc.Get("items.0.sort").Int())
	s.Equal("1d8", doc.Get("items.0.system.damage.value").String())
	s.True(doc.Get("items.0.system.range").Exists())

	// derived values are written, untouched inputs keep their stored form
	s.Equal(int64(2), doc.Get("system.abilities.str.bonus").Int())
	s.Equal(int64(1), doc.Get("system.abilities.dex.bonus").Int())
	s.Equal(gjson.String, doc.Get("system.abilities.dex.value").Type)

	reloaded, err := s.loader.Load("/actors/aldric.json")
	s.Require().NoError(err)
	s.Equal(2, reloaded.Character().Abilities[bfrpg.AbilityStrength].Bonus)
}

func (s *LoaderTestSuite) TestSaveKeepsYAMLFieldsOutsideTheModel() {
	s.write("/actors/goblin.yaml", goblinYAML+"img: tokens/goblin.png\n")

	actor, err := s.loader.Load("/actors/goblin.yaml")
	s.Require().NoError(err)
	rules.NewDeriver().Prepare(actor)
	s.Require().NoError(s.loader.Save("/actors/goblin.yaml", actor))

	data, err := afero.ReadFile(s.fs, "/actors/goblin.yaml")
	s.Require().NoError(err)

	var doc map[string]any
	s.Require().NoError(yaml.Unmarshal(data, &doc))
	s.Equal("tokens/goblin.png", doc["img"])

	system, ok := doc["system"].(map[string]any)
	s.Require().True(ok)
	xp, ok := system["xp"].(map[string]any)
	s.Require().True(ok)
	s.Equal(10, xp["value"])
}

func (s *LoaderTestSuite) TestMergeRejectsMalformedStoredDocument() {
	_, err := actorfile.Merge(actorfile.FormatJSON, []byte(`{"type": "dragon"}`), builders.NewMonsterBuilder().Build())
	s.True(errors.IsInvalidArgument(err))
}

func (s *LoaderTestSuite) TestSaveRejectsUnknownExtension() {
	err := s.loader.Save("/out/ship.toml", builders.NewVehicleBuilder().Build())
	s.True(errors.IsInvalidArgument(err))
}

func (s *LoaderTestSuite) TestFormatOf() {
	format, err := actorfile.FormatOf("a/B.YAML")
	s.NoError(err)
	s.Equal(actorfile.FormatYAML, format)

	format, err = actorfile.FormatOf("b.json")
	s.NoError(err)
	s.Equal(actorfile.FormatJSON, format)
}
