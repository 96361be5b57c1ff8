package domain

// Difficulty is the level OpenTDB assigns to a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Points returns the score awarded for a correct answer at this level.
// Unknown levels award nothing.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 20
	case DifficultyHard:
		return 30
	default:
		return 0
	}
}

// Category is one selectable trivia category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Question is a normalized question ready to be shown.
// CorrectIndex always points into Answers.
type Question struct {
	Text         string     `json:"text"`
	Difficulty   Difficulty `json:"difficulty"`
	Answers      []string   `json:"answers"`
	CorrectIndex int        `json:"correctIndex"`
}

// Round holds the state of one playthrough.
type Round struct {
	ID        string
	Category  Category
	Questions []Question
	Current   int
	Score     int
	Correct   int
}

// CurrentQuestion returns the question being played, if any.
func (r *Round) CurrentQuestion() (Question, bool) {
	if r == nil || r.Current < 0 || r.Current >= len(r.Questions) {
		return Question{}, false
	}
	return r.Questions[r.Current], true
}

// Award applies the outcome of an answer and returns the points added.
func (r *Round) Award(correct bool) int {
	q, ok := r.CurrentQuestion()
	if !ok || !correct {
		return 0
	}
	points := q.Difficulty.Points()
	r.Score += points
	r.Correct++
	return points
}

// Advance moves to the next question and reports whether one remains.
func (r *Round) Advance() bool {
	r.Current++
	return r.Current < len(r.Questions)
}

// Screen is the view currently visible to the player.
type Screen string

const (
	ScreenCategories Screen = "categories"
	ScreenLoading    Screen = "loading"
	ScreenQuestion   Screen = "question"
	ScreenScore      Screen = "score"
)

// QuestionView is the rendered state of the question card.
// Selected, CorrectAnswer and WrongAnswer are -1 when unset.
type QuestionView struct {
	Number        int        `json:"number"`
	Total         int        `json:"total"`
	Difficulty    Difficulty `json:"difficulty"`
	Text          string     `json:"text"`
	Answers       []string   `json:"answers"`
	Selected      int        `json:"selected"`
	CorrectAnswer int        `json:"correctAnswer"`
	WrongAnswer   int        `json:"wrongAnswer"`
	SubmitEnabled bool       `json:"submitEnabled"`
}

// Snapshot is everything a front end needs to draw the game.
type Snapshot struct {
	Screen           Screen        `json:"screen"`
	Categories       []Category    `json:"categories"`
	SelectedCategory int           `json:"selectedCategory"` // 0 when none
	Question         *QuestionView `json:"question,omitempty"`
	Score            int           `json:"score"`
	Correct          int           `json:"correct"`
	Total            int           `json:"total"`
}
