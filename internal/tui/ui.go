package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

const (
	pageCategories = string(domain.ScreenCategories)
	pageLoading    = string(domain.ScreenLoading)
	pageQuestion   = string(domain.ScreenQuestion)
	pageScore      = string(domain.ScreenScore)
	pageAlert      = "alert"
)

// UI is the terminal front end. It implements app.View: Render and Alert may
// be called from any goroutine and are applied on the tview event loop.
type UI struct {
	app   *tview.Application
	pages *tview.Pages
	post  func(app.Event)

	categories *tview.List
	loading    *tview.TextView
	header     *tview.TextView
	question   *tview.TextView
	answers    *tview.List
	summary    *tview.TextView
	scoreMenu  *tview.List
	alert      *tview.Modal

	screen    domain.Screen
	alertOpen bool
}

// New builds the screens. post receives every player action.
func New(post func(app.Event)) *UI {
	u := &UI{
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		post:   post,
		screen: domain.ScreenCategories,
	}

	u.categories = tview.NewList().ShowSecondaryText(false)
	u.categories.SetBorder(true).SetTitle(" Choose a category ")

	u.loading = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText("Loading questions...")
	u.loading.SetBorder(true)

	u.header = tview.NewTextView().SetDynamicColors(true)
	u.question = tview.NewTextView().SetWordWrap(true)
	u.answers = tview.NewList().ShowSecondaryText(false)
	card := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.header, 1, 0, false).
		AddItem(u.question, 0, 1, false).
		AddItem(u.answers, 0, 2, true)
	card.SetBorder(true).SetTitle(" Trivia ")

	u.summary = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	u.scoreMenu = tview.NewList().ShowSecondaryText(false).
		AddItem("Play again", "", 'p', func() { u.post(app.PlayAgain{}) }).
		AddItem("Quit", "", 'q', u.Stop)
	score := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.summary, 3, 0, false).
		AddItem(u.scoreMenu, 0, 1, true)
	score.SetBorder(true).SetTitle(" Round over ")

	u.alert = tview.NewModal().
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) { u.closeAlert() })

	u.pages.
		AddPage(pageCategories, center(60, 30, u.categories), true, true).
		AddPage(pageLoading, center(40, 3, u.loading), true, false).
		AddPage(pageQuestion, center(70, 16, card), true, false).
		AddPage(pageScore, center(40, 9, score), true, false).
		AddPage(pageAlert, u.alert, false, false)

	u.app.SetRoot(u.pages, true).SetFocus(u.categories)
	u.app.SetInputCapture(u.captureInput)
	return u
}

// Run blocks until the player quits.
func (u *UI) Run() error {
	return u.app.Run()
}

func (u *UI) Stop() { u.app.Stop() }

func (u *UI) Render(s domain.Snapshot) {
	u.app.QueueUpdateDraw(func() { u.draw(s) })
}

func (u *UI) Alert(message string) {
	u.app.QueueUpdateDraw(func() { u.showAlert(message) })
}

func (u *UI) captureInput(ev *tcell.EventKey) *tcell.EventKey {
	if ev.Key() != tcell.KeyEsc {
		return ev
	}
	if u.alertOpen {
		u.closeAlert()
		return nil
	}
	u.Stop()
	return nil
}

func (u *UI) draw(s domain.Snapshot) {
	u.screen = s.Screen
	switch s.Screen {
	case domain.ScreenCategories:
		u.drawCategories(s)
	case domain.ScreenQuestion:
		u.drawQuestion(s)
	case domain.ScreenScore:
		u.summary.SetText(fmt.Sprintf("Correct Answers: %d\nScore: %d", s.Correct, s.Score))
		u.scoreMenu.SetCurrentItem(0)
	}
	u.pages.SwitchToPage(string(s.Screen))
	if u.alertOpen {
		u.pages.ShowPage(pageAlert)
		u.app.SetFocus(u.alert)
		return
	}
	u.app.SetFocus(u.focus())
}

func (u *UI) drawCategories(s domain.Snapshot) {
	current := u.categories.GetCurrentItem()
	u.categories.Clear()
	for _, c := range s.Categories {
		id := c.ID
		label := "  " + tview.Escape(c.Name)
		if id == s.SelectedCategory {
			label = "[yellow]> " + tview.Escape(c.Name) + "[-]"
		}
		u.categories.AddItem(label, "", 0, func() { u.post(app.SelectCategory{ID: id}) })
	}
	u.categories.AddItem("[green]Start[-]", "", 's', func() { u.post(app.Start{}) })
	u.categories.SetCurrentItem(current)
}

func (u *UI) drawQuestion(s domain.Snapshot) {
	q := s.Question
	if q == nil {
		return
	}
	u.header.SetText(fmt.Sprintf("Question: %d / %d   Level: %s   Score: %d", q.Number, q.Total, q.Difficulty, s.Score))
	u.question.SetText(q.Text)

	current := u.answers.GetCurrentItem()
	if q.Selected < 0 && q.SubmitEnabled {
		current = 0
	}
	u.answers.Clear()
	for i, answer := range q.Answers {
		index := i
		u.answers.AddItem(answerLabel(q, i, answer), "", rune('1'+i), func() { u.post(app.SelectAnswer{Index: index}) })
	}
	if q.SubmitEnabled {
		u.answers.AddItem("[green]Submit[-]", "", 0, func() { u.post(app.Submit{}) })
	}
	u.answers.SetCurrentItem(current)
}

func answerLabel(q *domain.QuestionView, i int, answer string) string {
	text := tview.Escape(answer)
	switch {
	case i == q.CorrectAnswer:
		return "[green]✔ " + text + "[-]"
	case i == q.WrongAnswer:
		return "[red]✘ " + text + "[-]"
	case i == q.Selected:
		return "[yellow]> " + text + "[-]"
	default:
		return "  " + text
	}
}

func (u *UI) showAlert(message string) {
	u.alert.SetText(message)
	u.alertOpen = true
	u.pages.ShowPage(pageAlert)
	u.app.SetFocus(u.alert)
}

func (u *UI) closeAlert() {
	u.alertOpen = false
	u.pages.HidePage(pageAlert)
	u.app.SetFocus(u.focus())
}

func (u *UI) focus() tview.Primitive {
	switch u.screen {
	case domain.ScreenQuestion:
		return u.answers
	case domain.ScreenScore:
		return u.scoreMenu
	case domain.ScreenLoading:
		return u.loading
	default:
		return u.categories
	}
}

func center(w, h int, p tview.Primitive) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, h, 1, true).
			AddItem(nil, 0, 1, false), w, 1, true).
		AddItem(nil, 0, 1, false)
}
