package permission

// Definition is a permission declared by code, e.g. by a console route.
type Definition struct {
	Code        string
	Name        string
	Description string
	Type        Type
}

// CodeSet is a set of stored permission codes.
type CodeSet map[string]bool

func (s CodeSet) Exists(code string) bool { return s[code] }
