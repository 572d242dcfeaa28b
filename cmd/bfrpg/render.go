package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/bfrpg-rules/internal/engine"
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/orchestrators/actor"
	"github.com/KirkDiggler/bfrpg-rules/internal/orchestrators/roll"
	"github.com/KirkDiggler/bfrpg-rules/internal/rules"
)

type textRenderer interface {
	renderText(w io.Writer)
}

func (a *app) render(w io.Writer, v textRenderer) error {
	if a.output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	v.renderText(w)
	return nil
}

// sheetView is the printable result of a preparation pass
type sheetView struct {
	Actor         *bfrpg.Actor         `json:"actor"`
	Derived       []string             `json:"derived"`
	CarriedWeight int                  `json:"carriedWeight"`
	Inventory     inventoryView        `json:"inventory"`
	Saves         []actor.LabelledSave `json:"saves,omitempty"`
	RollData      json.RawMessage      `json:"rollData"`
}

type inventoryView struct {
	Gear     []string         `json:"gear,omitempty"`
	Weapons  []string         `json:"weapons,omitempty"`
	Armor    []string         `json:"armor,omitempty"`
	Spells   map[int][]string `json:"spells"`
	Features []string         `json:"features,omitempty"`
	Floors   []string         `json:"floors,omitempty"`
	Walls    map[int][]string `json:"walls,omitempty"`
}

func newSheetView(out *actor.PrepareActorOutput) *sheetView {
	inv := out.Inventory
	view := &sheetView{
		Actor:         out.Actor,
		Derived:       derivedLines(out.Actor),
		CarriedWeight: inv.CarriedWeight,
		Saves:         out.Saves,
		RollData:      out.RollData.JSON(),
		Inventory: inventoryView{
			Gear:     itemNames(inv.Gear),
			Weapons:  itemNames(inv.Weapons),
			Armor:    itemNames(inv.Armor),
			Features: itemNames(inv.Features),
			Floors:   itemNames(inv.Floors),
			Spells:   make(map[int][]string, len(inv.Spells)),
			Walls:    make(map[int][]string, len(inv.Walls)),
		},
	}
	for level, spells := range inv.Spells {
		view.Inventory.Spells[level] = itemNames(spells)
	}
	for floor, walls := range inv.Walls {
		view.Inventory.Walls[floor] = itemNames(walls)
	}
	return view
}

func (v *sheetView) renderText(w io.Writer) {
	fmt.Fprintf(w, "%s (%s)\n", v.Actor.Name, v.Actor.Kind())
	for _, line := range v.Derived {
		fmt.Fprintf(w, "  %s\n", line)
	}

	if len(v.Saves) > 0 {
		fmt.Fprintln(w, "  Saves:")
		for _, save := range v.Saves {
			fmt.Fprintf(w, "    %s: %s\n", save.Label, number(save.Value.Float()))
		}
	}

	list := func(label string, names []string) {
		if len(names) > 0 {
			fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(names, ", "))
		}
	}
	list("Gear", v.Inventory.Gear)
	list("Weapons", v.Inventory.Weapons)
	list("Armor", v.Inventory.Armor)
	for level := rules.MinSpellLevel; level <= rules.MaxSpellLevel; level++ {
		list(fmt.Sprintf("Spells (level %d)", level), v.Inventory.Spells[level])
	}
	list("Features", v.Inventory.Features)
	list("Floors", v.Inventory.Floors)

	floors := make([]int, 0, len(v.Inventory.Walls))
	for floor := range v.Inventory.Walls {
		floors = append(floors, floor)
	}
	sort.Ints(floors)
	for _, floor := range floors {
		list(fmt.Sprintf("Walls (floor %d)", floor), v.Inventory.Walls[floor])
	}

	if v.Actor.Kind() == bfrpg.KindCharacter {
		fmt.Fprintf(w, "  Carried weight: %d\n", v.CarriedWeight)
	}
}

// derivedLines summarizes the fields the preparation pass computed
func derivedLines(a *bfrpg.Actor) []string {
	switch s := a.System.(type) {
	case *bfrpg.Character:
		lines := make([]string, 0, len(bfrpg.Abilities))
		for _, key := range bfrpg.Abilities {
			ability, ok := s.Abilities[key]
			if !ok || ability == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %s (%s)", strings.ToUpper(key),
				number(ability.Value.Float()), bonus(float64(ability.Bonus))))
		}
		return lines
	case *bfrpg.Monster:
		return []string{
			"XP: " + number(s.XP.Value.Float()),
			"Attack bonus: " + bonus(s.AttackBonus.Value.Float()),
		}
	case *bfrpg.Stronghold:
		return []string{
			"Height: " + number(s.Height.Value.Float()),
			"Cost: " + number(s.Cost.Value.Float()) + " gp",
			"Build time: " + number(s.BuildTime.Value.Float()) + " days",
		}
	case *bfrpg.Vehicle:
		return []string{
			"Hit points: " + number(s.HitPoints.Value.Float()) + "/" + number(s.HitPoints.Max.Float()),
			"Move: " + number(s.Move.Current.Float()) + " of " + number(s.Move.Value.Float()),
		}
	default:
		return nil
	}
}

// messageView is the printable form of a chat message
type messageView struct {
	ID        string         `json:"id"`
	Speaker   string         `json:"speaker"`
	Flavor    []string       `json:"flavor"`
	Content   string         `json:"content,omitempty"`
	Roll      *engine.Result `json:"roll,omitempty"`
	Outcome   string         `json:"outcome,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	HitPoints *bfrpg.Pool    `json:"hitPoints,omitempty"`
}

func newMessageView(msg *roll.ChatMessage) *messageView {
	view := &messageView{
		ID:        msg.ID,
		Flavor:    msg.Flavor,
		Content:   msg.Content,
		Roll:      msg.Roll,
		Outcome:   msg.Outcome.Label(),
		Warnings:  msg.Warnings,
		CreatedAt: msg.CreatedAt,
	}
	if msg.Speaker != nil {
		view.Speaker = msg.Speaker.GetID()
	}
	return view
}

func (v *messageView) renderText(w io.Writer) {
	for _, line := range v.Flavor {
		fmt.Fprintln(w, line)
	}
	if v.Content != "" {
		fmt.Fprintf(w, "  %s\n", v.Content)
	}
	if v.Roll != nil {
		fmt.Fprintf(w, "  %s = %s\n", v.Roll.Formula, number(v.Roll.Total))
		for _, term := range v.Roll.Dice {
			fmt.Fprintf(w, "    %s: %v", term.Expression, term.Results)
			if len(term.Dropped) > 0 {
				fmt.Fprintf(w, " dropped %v", term.Dropped)
			}
			fmt.Fprintln(w)
		}
	}
	if v.HitPoints != nil {
		fmt.Fprintf(w, "  Hit points: %s/%s\n", number(v.HitPoints.Value.Float()), number(v.HitPoints.Max.Float()))
	}
	for _, warning := range v.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}

func itemNames(items []*bfrpg.Item) []string {
	if len(items) == 0 {
		return nil
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func bonus(v float64) string {
	if v < 0 {
		return number(v)
	}
	return "+" + number(v)
}
