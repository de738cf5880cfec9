package common

type Identifier struct {
	Value string
}

func (i Identifier) String() string {
	return i.Value
}

func (i Identifier) IsEmpty() bool {
	return i.Value == ""
}

func NewIdentifier(name string) Identifier {
	return Identifier{name}
}

func NewIdentifiers(names ...string) []Identifier {
	result := make([]Identifier, len(names))
	for i, name := range names {
		result[i] = NewIdentifier(name)
	}
	return result
}
