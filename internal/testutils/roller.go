package testutils

import (
	"fmt"
	"sync"
)

// ScriptedRoller is a dice.Roller that returns pre-arranged faces in order.
// Each RollN call consumes one script entry, which must hold exactly count
// faces.
type ScriptedRoller struct {
	mu     sync.Mutex
	script [][]int
	Calls  []RollCall
}

// RollCall records one request made to the roller
type RollCall struct {
	Count int
	Size  int
}

// NewScriptedRoller creates a roller that answers with the given faces
func NewScriptedRoller(script ...[]int) *ScriptedRoller {
	return &ScriptedRoller{script: script}
}

// Roll returns the next single face
func (r *ScriptedRoller) Roll(size int) (int, error) {
	faces, err := r.RollN(1, size)
	if err != nil {
		return 0, err
	}
	return faces[0], nil
}

// RollN returns the next scripted faces
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, RollCall{Count: count, Size: size})
	if len(r.script) == 0 {
		return nil, fmt.Errorf("no scripted roll left for %dd%d", count, size)
	}

	next := r.script[0]
	r.script = r.script[1:]
	if len(next) != count {
		return nil, fmt.Errorf("scripted %d faces for %dd%d", len(next), count, size)
	}
	return next, nil
}

// Remaining reports how many scripted rolls are unused
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.script)
}
