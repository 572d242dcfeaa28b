package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/bfrpg-rules/internal/actorfile"
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/testutils"
)

const fighterFile = `{
  "id": "a1",
  "name": "Brand",
  "type": "character",
  "system": {
    "abilities": {"str": {"value": 16}, "dex": {"value": 9}},
    "saves": {"death": {"value": 12}, "spells": {"value": 16}},
    "money": {"gp": {"value": 60}},
    "level": {"value": 1},
    "attackBonus": {"value": 1}
  },
  "items": [
    {"id": "w1", "name": "Longsword", "type": "weapon", "system": {"weight": {"value": 4}, "bonusAb": {"value": 0}}},
    {"id": "g1", "name": "Torch", "type": "item", "system": {"weight": {"value": 1}, "quantity": {"value": 6}}}
  ]
}`

const goblinFile = `
id: m1
name: Goblin
img: tokens/goblin.png
type: monster
system:
  hitDice: {number: 2, size: d8, mod: 1}
  specialAbility: {value: 0}
`

type CLITestSuite struct {
	suite.Suite
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.stdout = &bytes.Buffer{}
	s.stderr = &bytes.Buffer{}
	s.T().Setenv("BFRPG_LOG_LEVEL", "error")
	s.T().Setenv("BFRPG_SAVE_DEATH", "Death Ray")
}

func (s *CLITestSuite) file(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *CLITestSuite) run(roller *testutils.ScriptedRoller, args ...string) error {
	cmd := newRootCmd(roller)
	cmd.SetOut(s.stdout)
	cmd.SetErr(s.stderr)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(s.dir, "absent.env")))
	return cmd.Execute()
}

func (s *CLITestSuite) TestPrepareJSON() {
	path := s.file("fighter.json", fighterFile)

	s.Require().NoError(s.run(testutils.NewScriptedRoller(), "prepare", path, "-o", "json"))

	var view struct {
		CarriedWeight int      `json:"carriedWeight"`
		Derived       []string `json:"derived"`
		Saves         []struct {
			Label string  `json:"label"`
			Value float64 `json:"value"`
		} `json:"saves"`
		Inventory struct {
			Weapons []string `json:"weapons"`
		} `json:"inventory"`
		RollData map[string]any `json:"rollData"`
	}
	s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &view))

	// 4 + 1*6 + floor(60/20)
	s.Equal(13, view.CarriedWeight)
	s.Contains(view.Derived, "STR 16 (+2)")
	s.Require().Len(view.Saves, 2)
	s.Equal("Death Ray", view.Saves[0].Label)
	s.Equal([]string{"Longsword"}, view.Inventory.Weapons)
	s.Equal(float64(1), view.RollData["ab"])
}

func (s *CLITestSuite) TestPrepareWriteStoresDerivedFields() {
	path := s.file("goblin.yaml", goblinFile)

	s.Require().NoError(s.run(testutils.NewScriptedRoller(), "prepare", path, "--write"))
	s.Contains(s.stdout.String(), "Goblin (monster)")
	s.Contains(s.stdout.String(), "XP: 75")

	reloaded, err := actorfile.NewLoader(nil).Load(path)
	s.Require().NoError(err)
	s.Equal(bfrpg.Number(75), reloaded.Monster().XP.Value)
	s.Equal(bfrpg.Number(2), reloaded.Monster().AttackBonus.Value)

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Contains(string(data), "img: tokens/goblin.png")
}

func (s *CLITestSuite) TestRollAgainstTarget() {
	path := s.file("fighter.json", fighterFile)

	err := s.run(testutils.NewScriptedRoller([]int{11}),
		"roll", path, "1d20+@str.bonus", "--label", "Open Doors", "--target", "12")
	s.Require().NoError(err)

	out := s.stdout.String()
	s.Contains(out, "Roll: Open Doors")
	s.Contains(out, "Success vs. target number 12")
	s.Contains(out, "1d20+@str.bonus = 13")
}

func (s *CLITestSuite) TestAttackByName() {
	path := s.file("fighter.json", fighterFile)

	s.Require().NoError(s.run(testutils.NewScriptedRoller([]int{7}), "attack", path, "Longsword", "-o", "json"))

	var view struct {
		Speaker string   `json:"speaker"`
		Flavor  []string `json:"flavor"`
		Roll    struct {
			Formula string  `json:"formula"`
			Total   float64 `json:"total"`
		} `json:"roll"`
	}
	s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &view))
	s.Equal("a1", view.Speaker)
	s.Equal([]string{"Roll: Melee attack with Longsword"}, view.Flavor)
	s.Equal("d20+@ab+@str.bonus+0", view.Roll.Formula)
	s.Equal(10.0, view.Roll.Total)
}

func (s *CLITestSuite) TestItemDescription() {
	path := s.file("fighter.json", fighterFile)

	s.Require().NoError(s.run(testutils.NewScriptedRoller(), "item", path, "g1"))
	s.Contains(s.stdout.String(), "Item - Torch")
}

func (s *CLITestSuite) TestInitiative() {
	path := s.file("fighter.json", fighterFile)

	roller := testutils.NewScriptedRoller([]int{4})
	s.Require().NoError(s.run(roller, "initiative", path))
	s.Contains(s.stdout.String(), "= 4")
	s.Equal([]testutils.RollCall{{Count: 1, Size: 6}}, roller.Calls)
}

func (s *CLITestSuite) TestHitPointsWrite() {
	path := s.file("goblin.yaml", goblinFile)

	s.Require().NoError(s.run(testutils.NewScriptedRoller([]int{2, 5}), "hitpoints", path, "--write"))
	s.Contains(s.stdout.String(), "Hit points: 8/8")

	reloaded, err := actorfile.NewLoader(nil).Load(path)
	s.Require().NoError(err)
	s.Equal(bfrpg.Pool{Value: 8, Max: 8}, reloaded.Monster().HitPoints)
}

func (s *CLITestSuite) TestHitPointsDisabled() {
	s.T().Setenv("BFRPG_AUTO_ROLL_TOKEN_HP", "false")
	path := s.file("goblin.yaml", goblinFile)

	roller := testutils.NewScriptedRoller()
	s.Require().NoError(s.run(roller, "hitpoints", path))
	s.Contains(s.stdout.String(), "disabled")
	s.Empty(roller.Calls)
}

func (s *CLITestSuite) TestErrors() {
	path := s.file("fighter.json", fighterFile)

	s.Error(s.run(testutils.NewScriptedRoller(), "prepare", path, "-o", "xml"))
	s.Error(s.run(testutils.NewScriptedRoller(), "attack", path, "Battleaxe"))
	s.Error(s.run(testutils.NewScriptedRoller(), "hitpoints", path))
	s.Error(s.run(testutils.NewScriptedRoller(), "prepare", filepath.Join(s.dir, "missing.json")))
}
