package sim

import "strings"

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// NameMustBeValid panics if the name does not follow the naming convention.
// Names are hierarchical, with dot-separated, non-empty tokens, such as
// "PSNetwork.Node[2]". Square brackets must match.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	tokens := strings.Split(name, ".")
	for _, token := range tokens {
		if token == "" {
			panic("name " + name + " has an empty token")
		}

		bracketMustMatch(name, token)
	}
}

func bracketMustMatch(name, token string) {
	open := 0
	for _, c := range token {
		switch c {
		case '[':
			open++
		case ']':
			open--
			if open < 0 {
				panic("name " + name + " has unmatched brackets")
			}
		}
	}

	if open != 0 {
		panic("name " + name + " has unmatched brackets")
	}
}
