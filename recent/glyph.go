package recent

// Glyph is one selectable emoji. Identity is Code alone; Name and Category
// are display metadata carried through untouched.
type Glyph struct {
	Code     string `json:"code"`
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
}

// Resolver recovers a full glyph record from a persisted code.
type Resolver interface {
	Lookup(code string) (Glyph, bool)
}

// Snapshot is a point-in-time copy of a store's state.
type Snapshot struct {
	Items []Glyph `json:"items"`
	Page  int     `json:"page"`
}
