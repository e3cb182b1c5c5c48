package resolver

type scope struct {
	// Scopes hold few names, a slice is fine.
	names []name
}

type name struct {
	text    string
	defined bool
}

func makeScope() scope {
	return scope{names: make([]name, 0, 4)}
}

// Returns the index of the name along with if it is defined, -1 if the name
// is not present.
func (s *scope) lookup(text string) (int, bool) {
	for i, n := range s.names {
		if n.text == text {
			return i, n.defined
		}
	}

	return -1, false
}

// Adds the name, undefined. False if the scope already had it.
func (s *scope) declare(text string) bool {
	if i, _ := s.lookup(text); i >= 0 {
		return false
	}

	s.names = append(s.names, name{text: text})
	return true
}

func (s *scope) define(text string) {
	if i, _ := s.lookup(text); i >= 0 {
		s.names[i].defined = true
	}
}
