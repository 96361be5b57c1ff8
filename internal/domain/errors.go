package domain

import "errors"

var (
	// ErrNoCategorySelected is returned when a round is started without a category.
	ErrNoCategorySelected = errors.New("no category selected")
	// ErrNoResults indicates the trivia API returned an empty question list.
	ErrNoResults = errors.New("no questions returned")
	// ErrCorrectAnswerMissing indicates the correct answer was lost while shuffling.
	ErrCorrectAnswerMissing = errors.New("correct answer not found among answers")
	// ErrCategoriesUnavailable indicates the category catalog could not be loaded.
	ErrCategoriesUnavailable = errors.New("categories unavailable")
)
