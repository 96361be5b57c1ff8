package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/opentdb"
)

const (
	DefaultAmount      = 5
	DefaultRevealDelay = 1500 * time.Millisecond

	// AlertSelectCategory is shown when a round is started with no category.
	AlertSelectCategory = "Please select a category!"
	// AlertCategoriesUnavailable is shown when the catalog cannot be loaded.
	AlertCategoriesUnavailable = "Categories are unavailable right now."
)

// CategoryRepository provides the selectable categories (from cache/backing store).
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// QuestionSource fetches raw questions for a category.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, categoryID, amount int) ([]opentdb.RawQuestion, error)
}

// View draws snapshots and shows blocking alerts. Calls come from the game loop.
type View interface {
	Render(domain.Snapshot)
	Alert(message string)
}

// RunnerState is the quiz runner's position within a question.
type RunnerState int

const (
	StateAwaitingAnswer RunnerState = iota
	StateScoring
	StateAdvancing
	StateComplete
)

func (s RunnerState) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateScoring:
		return "scoring"
	case StateAdvancing:
		return "advancing"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Options tunes a game. Zero values fall back to defaults.
type Options struct {
	Amount        int
	RevealDelay   time.Duration
	AnswerTimeout time.Duration // 0 disables the per-question limit
	Rand          *rand.Rand
}

// Event is a discrete player action or timer signal.
type Event interface {
	isEvent()
}

type (
	SelectCategory struct{ ID int }
	Start          struct{}
	SelectAnswer   struct{ Index int }
	Submit         struct{}
	PlayAgain      struct{}

	questionsLoaded struct {
		roundID   string
		questions []domain.Question
		err       error
	}
	advance struct {
		roundID  string
		question int
	}
	answerTimeout struct {
		roundID  string
		question int
	}
)

func (SelectCategory) isEvent()  {}
func (Start) isEvent()           {}
func (SelectAnswer) isEvent()    {}
func (Submit) isEvent()          {}
func (PlayAgain) isEvent()       {}
func (questionsLoaded) isEvent() {}
func (advance) isEvent()         {}
func (answerTimeout) isEvent()   {}

// Game is one player's quiz. All state below events is owned by the Run goroutine.
type Game struct {
	categories CategoryRepository
	source     QuestionSource
	normalizer *Normalizer
	view       View
	logger     *zap.Logger
	opts       Options

	events chan Event
	done   chan struct{}
	spawn  func(func())
	after  func(time.Duration, func())

	catalog  []domain.Category
	selector *Selector
	screen   domain.Screen
	round    *domain.Round
	state    RunnerState
	selected int
	wrong    int
}

func NewGame(categories CategoryRepository, source QuestionSource, view View, logger *zap.Logger, opts Options) *Game {
	if opts.Amount <= 0 {
		opts.Amount = DefaultAmount
	}
	if opts.RevealDelay <= 0 {
		opts.RevealDelay = DefaultRevealDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		categories: categories,
		source:     source,
		normalizer: NewNormalizer(opts.Rand),
		view:       view,
		logger:     logger,
		opts:       opts,
		events:     make(chan Event, 16),
		done:       make(chan struct{}),
		spawn:      func(f func()) { go f() },
		after:      func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		selector:   NewSelector(nil),
		screen:     domain.ScreenCategories,
		selected:   -1,
		wrong:      -1,
	}
}

// Post queues an event for the game loop. It is safe for concurrent use and
// drops the event once the loop has stopped.
func (g *Game) Post(ev Event) {
	select {
	case g.events <- ev:
	case <-g.done:
	}
}

// Run loads the catalog, shows the category screen and processes events until
// ctx is canceled.
func (g *Game) Run(ctx context.Context) error {
	defer close(g.done)
	g.init(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-g.events:
			g.handle(ctx, ev)
		}
	}
}

func (g *Game) init(ctx context.Context) {
	categories, err := g.categories.ListCategories(ctx)
	if err != nil {
		g.logger.Error("load categories failed", zap.Error(err))
		g.view.Alert(AlertCategoriesUnavailable)
	}
	g.catalog = categories
	g.selector = NewSelector(categories)
	g.screen = domain.ScreenCategories
	g.render()
}

func (g *Game) handle(ctx context.Context, ev Event) {
	switch ev := ev.(type) {
	case SelectCategory:
		if g.screen != domain.ScreenCategories {
			return
		}
		g.selector.Toggle(ev.ID)
		g.render()
	case Start:
		if g.screen != domain.ScreenCategories {
			return
		}
		g.start(ctx)
	case questionsLoaded:
		g.loaded(ev)
	case SelectAnswer:
		if !g.awaiting() {
			return
		}
		q, _ := g.round.CurrentQuestion()
		if ev.Index < 0 || ev.Index >= len(q.Answers) {
			return
		}
		g.selected = ev.Index
		g.render()
	case Submit:
		if !g.awaiting() {
			return
		}
		g.submit()
	case answerTimeout:
		if !g.awaiting() || !g.matches(ev.roundID, ev.question) {
			return
		}
		g.logger.Debug("answer timed out", zap.String("round", ev.roundID), zap.Int("question", ev.question))
		g.submit()
	case advance:
		if g.screen != domain.ScreenQuestion || g.state != StateScoring || !g.matches(ev.roundID, ev.question) {
			return
		}
		g.next()
	case PlayAgain:
		if g.screen != domain.ScreenScore {
			return
		}
		g.round = nil
		g.selector.Clear()
		g.screen = domain.ScreenCategories
		g.render()
	}
}

func (g *Game) start(ctx context.Context) {
	category, ok := g.selector.Selected()
	if !ok {
		g.view.Alert(AlertSelectCategory)
		return
	}

	round := &domain.Round{ID: uuid.NewString(), Category: category}
	g.round = round
	g.screen = domain.ScreenLoading
	g.render()

	g.logger.Info("round started",
		zap.String("round", round.ID),
		zap.Int("category", category.ID),
		zap.String("category_name", category.Name),
	)

	amount := g.opts.Amount
	g.spawn(func() {
		raw, err := g.source.FetchQuestions(ctx, category.ID, amount)
		var questions []domain.Question
		if err == nil {
			questions, err = g.normalizer.Normalize(raw)
		}
		g.Post(questionsLoaded{roundID: round.ID, questions: questions, err: err})
	})
}

func (g *Game) loaded(ev questionsLoaded) {
	if g.screen != domain.ScreenLoading || g.round == nil || g.round.ID != ev.roundID {
		return
	}
	if ev.err != nil {
		// The player stays on the loading screen.
		g.logger.Error("fetch questions failed",
			zap.String("round", ev.roundID),
			zap.Int("category", g.round.Category.ID),
			zap.Error(ev.err),
		)
		return
	}
	g.round.Questions = ev.questions
	g.show()
}

func (g *Game) show() {
	g.state = StateAwaitingAnswer
	g.selected = -1
	g.wrong = -1
	g.screen = domain.ScreenQuestion
	g.render()

	if g.opts.AnswerTimeout > 0 {
		roundID, question := g.round.ID, g.round.Current
		g.after(g.opts.AnswerTimeout, func() {
			g.Post(answerTimeout{roundID: roundID, question: question})
		})
	}
}

func (g *Game) submit() {
	g.state = StateScoring
	q, _ := g.round.CurrentQuestion()

	correct := g.selected >= 0 && g.selected == q.CorrectIndex
	if g.selected >= 0 && !correct {
		g.wrong = g.selected
	}
	awarded := g.round.Award(correct)
	g.render()

	g.logger.Debug("answer scored",
		zap.String("round", g.round.ID),
		zap.Int("question", g.round.Current),
		zap.Int("selected", g.selected),
		zap.Bool("correct", correct),
		zap.Int("awarded", awarded),
	)

	roundID, question := g.round.ID, g.round.Current
	g.after(g.opts.RevealDelay, func() {
		g.Post(advance{roundID: roundID, question: question})
	})
}

func (g *Game) next() {
	g.state = StateAdvancing
	if g.round.Advance() {
		g.show()
		return
	}
	g.state = StateComplete
	g.screen = domain.ScreenScore
	g.render()
	g.logger.Info("round complete",
		zap.String("round", g.round.ID),
		zap.Int("score", g.round.Score),
		zap.Int("correct", g.round.Correct),
	)
}

func (g *Game) awaiting() bool {
	return g.screen == domain.ScreenQuestion && g.state == StateAwaitingAnswer
}

func (g *Game) matches(roundID string, question int) bool {
	return g.round != nil && g.round.ID == roundID && g.round.Current == question
}

func (g *Game) render() {
	g.view.Render(g.snapshot())
}

func (g *Game) snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Screen:           g.screen,
		Categories:       g.catalog,
		SelectedCategory: g.selector.SelectedID(),
	}
	if g.round == nil {
		return snap
	}
	snap.Score = g.round.Score
	snap.Correct = g.round.Correct
	snap.Total = len(g.round.Questions)

	if g.screen != domain.ScreenQuestion {
		return snap
	}
	q, ok := g.round.CurrentQuestion()
	if !ok {
		return snap
	}
	view := &domain.QuestionView{
		Number:        g.round.Current + 1,
		Total:         len(g.round.Questions),
		Difficulty:    q.Difficulty,
		Text:          q.Text,
		Answers:       q.Answers,
		Selected:      g.selected,
		CorrectAnswer: -1,
		WrongAnswer:   g.wrong,
		SubmitEnabled: g.state == StateAwaitingAnswer,
	}
	if g.state != StateAwaitingAnswer {
		view.CorrectAnswer = q.CorrectIndex
	}
	snap.Question = view
	return snap
}
