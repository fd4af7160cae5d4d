package domain

type Family string

const (
	FamilySmall  Family = "small"
	FamilyMedium Family = "medium"
	FamilyLarge  Family = "large"
)

// Rank orders families by size, starting at 0 for small.
func (f Family) Rank() int {
	switch f {
	case FamilyMedium:
		return 1
	case FamilyLarge:
		return 2
	default:
		return 0
	}
}

func ParseFamily(s string) (Family, bool) {
	switch f := Family(s); f {
	case FamilySmall, FamilyMedium, FamilyLarge:
		return f, true
	}
	return "", false
}

type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

func ParseScheme(s string) (Scheme, bool) {
	switch sc := Scheme(s); sc {
	case "":
		return SchemeLight, true
	case SchemeLight, SchemeDark:
		return sc, true
	}
	return "", false
}
