package engine

// EvaluateInput contains the formula and the variables it may reference
type EvaluateInput struct {
	Formula string
	Data    Variables
}

// Keep modes for dice terms such as 4d6kh3
const (
	KeepAll     = ""
	KeepHighest = "kh"
	KeepLowest  = "kl"
)

// DiceTerm is one rolled dice expression within a formula
type DiceTerm struct {
	Expression string `json:"expression"`
	Count      int    `json:"count"`
	Size       int    `json:"size"`
	Keep       string `json:"keep,omitempty"`
	KeepCount  int    `json:"keepCount,omitempty"`
	Results    []int  `json:"results"`
	Dropped    []int  `json:"dropped,omitempty"`
	Total      int    `json:"total"`
}

// Result is an evaluated formula with its breakdown
type Result struct {
	// Formula is the formula as written
	Formula string `json:"formula"`
	// Resolved is the formula after variable substitution
	Resolved string `json:"resolved"`
	// Expression is the arithmetic left after dice were rolled
	Expression string     `json:"expression"`
	Total      float64    `json:"total"`
	Dice       []DiceTerm `json:"dice,omitempty"`
}
