package rules

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// Roll data keys added on top of the actor's system fields
const (
	RollDataLevel       = "lvl"
	RollDataAttackBonus = "ab"
	RollDataItem        = "item"
)

// RollData is the variable context formulas are resolved against. It holds
// the actor's system fields as a JSON document addressed with dotted paths
// such as "abilities.dex.bonus".
type RollData struct {
	raw []byte
}

// NewRollData builds roll data for an actor. Characters also get their
// abilities at the top level and "lvl"; any actor with an attack bonus gets
// "ab". A missing initiative bonus reads as zero.
func NewRollData(actor *bfrpg.Actor) (*RollData, error) {
	raw := []byte("{}")
	if actor.System != nil {
		var err error
		raw, err = json.Marshal(actor.System)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %s system", actor.Kind())
		}
	}

	rd := &RollData{raw: raw}

	if actor.Kind() == bfrpg.KindCharacter {
		for key, value := range gjson.GetBytes(rd.raw, "abilities").Map() {
			rd.setRaw(key, value.Raw)
		}
		if gjson.GetBytes(rd.raw, "level").Exists() {
			rd.set(RollDataLevel, numberOrZero(rd.raw, "level.value"))
		}
	}

	if gjson.GetBytes(rd.raw, "attackBonus").Exists() {
		rd.set(RollDataAttackBonus, numberOrZero(rd.raw, "attackBonus.value"))
	}

	if gjson.GetBytes(rd.raw, "initBonus.value").Type != gjson.Number {
		rd.set("initBonus.value", 0)
	}

	return rd, nil
}

// WithItem returns a copy of the roll data with the item's fields under "item"
func (r *RollData) WithItem(item *bfrpg.Item) (*RollData, error) {
	itemRaw, err := json.Marshal(item.System)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode item %s", item.ID)
	}

	out := &RollData{raw: append([]byte(nil), r.raw...)}
	out.setRaw(RollDataItem, string(itemRaw))
	return out, nil
}

// Lookup resolves a dotted path to a number. Numeric strings are accepted;
// missing paths, nulls and other values are not.
func (r *RollData) Lookup(path string) (float64, bool) {
	res := gjson.GetBytes(r.raw, path)
	switch res.Type {
	case gjson.Number:
		return res.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(res.Str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Get returns the raw value at path for display
func (r *RollData) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// JSON returns the roll data document
func (r *RollData) JSON() []byte {
	return r.raw
}

func (r *RollData) set(path string, value any) {
	if out, err := sjson.SetBytes(r.raw, path, value); err == nil {
		r.raw = out
	}
}

func (r *RollData) setRaw(path, value string) {
	if out, err := sjson.SetRawBytes(r.raw, path, []byte(value)); err == nil {
		r.raw = out
	}
}

func numberOrZero(raw []byte, path string) float64 {
	res := gjson.GetBytes(raw, path)
	if res.Type != gjson.Number {
		return 0
	}
	return res.Num
}
