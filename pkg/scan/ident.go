package scan

// Ident is a source-located identifier. Identity is defined by Value alone:
// registries and lookup tables must key on Value (a plain string), never on
// the whole struct, so that identifiers parsed from different files or
// offsets compare equal when their text is equal.
type Ident struct {
	Value string
	Pos   Position
	Len   int
}

func (i Ident) String() string {
	return i.Value
}
