package app

import "trivia-quiz/internal/domain"

// Selector tracks the single selected category among a fixed set.
type Selector struct {
	categories []domain.Category
	selected   int
}

func NewSelector(categories []domain.Category) *Selector {
	return &Selector{categories: categories}
}

// Toggle deselects id if it is selected, otherwise makes it the only selection.
// Unknown ids are ignored.
func (s *Selector) Toggle(id int) {
	if id == s.selected && id != 0 {
		s.selected = 0
		return
	}
	for _, c := range s.categories {
		if c.ID == id {
			s.selected = id
			return
		}
	}
}

// Selected returns the selected category, if any.
func (s *Selector) Selected() (domain.Category, bool) {
	for _, c := range s.categories {
		if c.ID == s.selected {
			return c, true
		}
	}
	return domain.Category{}, false
}

// SelectedID returns the selected category id, or 0.
func (s *Selector) SelectedID() int {
	return s.selected
}

func (s *Selector) Clear() {
	s.selected = 0
}
