package selection

import "autopick/internal/domain"

// State holds selection state
type State struct {
	Items   []domain.Option // selection order
	byValue map[string]int  // value -> index into Items
}

func newState() *State {
	return &State{
		Items:   make([]domain.Option, 0),
		byValue: make(map[string]int),
	}
}

func (s *State) reindex() {
	s.byValue = make(map[string]int, len(s.Items))
	for i, opt := range s.Items {
		s.byValue[opt.Value] = i
	}
}
