package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

func TestCategoriesScreenMarksSelectionAndPostsEvents(t *testing.T) {
	var posted []app.Event
	u := New(func(ev app.Event) { posted = append(posted, ev) })

	u.draw(domain.Snapshot{
		Screen:           domain.ScreenCategories,
		Categories:       []domain.Category{{ID: 9, Name: "General Knowledge"}, {ID: 18, Name: "Science: Computers"}},
		SelectedCategory: 18,
	})

	if got := u.categories.GetItemCount(); got != 3 {
		t.Fatalf("expected 2 categories plus start, got %d items", got)
	}
	first, _ := u.categories.GetItemText(0)
	second, _ := u.categories.GetItemText(1)
	if strings.Contains(first, ">") || !strings.Contains(second, "> Science: Computers") {
		t.Fatalf("expected only second category marked, got %q and %q", first, second)
	}
	if name, _ := u.pages.GetFrontPage(); name != pageCategories {
		t.Fatalf("expected categories page, got %s", name)
	}

	press(u.categories, 0)
	press(u.categories, 2)
	if len(posted) != 2 {
		t.Fatalf("expected 2 events, got %v", posted)
	}
	if ev, ok := posted[0].(app.SelectCategory); !ok || ev.ID != 9 {
		t.Fatalf("expected select category 9, got %#v", posted[0])
	}
	if _, ok := posted[1].(app.Start); !ok {
		t.Fatalf("expected start, got %#v", posted[1])
	}
}

func TestQuestionScreenShowsHeaderAndReveal(t *testing.T) {
	var posted []app.Event
	u := New(func(ev app.Event) { posted = append(posted, ev) })

	q := &domain.QuestionView{
		Number: 2, Total: 5, Difficulty: domain.DifficultyMedium,
		Text:     "Which planet is largest?",
		Answers:  []string{"Mars", "Jupiter", "Venus", "Earth"},
		Selected: -1, CorrectAnswer: -1, WrongAnswer: -1,
		SubmitEnabled: true,
	}
	u.draw(domain.Snapshot{Screen: domain.ScreenQuestion, Question: q, Score: 20})

	if got := u.header.GetText(true); got != "Question: 2 / 5   Level: medium   Score: 20" {
		t.Fatalf("unexpected header %q", got)
	}
	if got := u.answers.GetItemCount(); got != 5 {
		t.Fatalf("expected 4 answers plus submit, got %d", got)
	}

	press(u.answers, 1)
	press(u.answers, 4)
	if ev, ok := posted[0].(app.SelectAnswer); !ok || ev.Index != 1 {
		t.Fatalf("expected select answer 1, got %#v", posted[0])
	}
	if _, ok := posted[1].(app.Submit); !ok {
		t.Fatalf("expected submit, got %#v", posted[1])
	}

	revealed := *q
	revealed.Selected, revealed.CorrectAnswer, revealed.WrongAnswer = 0, 1, 0
	revealed.SubmitEnabled = false
	u.draw(domain.Snapshot{Screen: domain.ScreenQuestion, Question: &revealed, Score: 20})

	if got := u.answers.GetItemCount(); got != 4 {
		t.Fatalf("expected submit hidden after scoring, got %d items", got)
	}
	wrong, _ := u.answers.GetItemText(0)
	correct, _ := u.answers.GetItemText(1)
	if !strings.Contains(wrong, "[red]") || !strings.Contains(correct, "[green]") {
		t.Fatalf("expected wrong and correct markers, got %q and %q", wrong, correct)
	}
}

func TestScoreScreenAndAlert(t *testing.T) {
	var posted []app.Event
	u := New(func(ev app.Event) { posted = append(posted, ev) })

	u.draw(domain.Snapshot{Screen: domain.ScreenScore, Score: 70, Correct: 4, Total: 5})
	if got := u.summary.GetText(true); got != "Correct Answers: 4\nScore: 70" {
		t.Fatalf("unexpected summary %q", got)
	}
	press(u.scoreMenu, 0)
	if _, ok := posted[0].(app.PlayAgain); !ok {
		t.Fatalf("expected play again, got %#v", posted[0])
	}

	u.showAlert(app.AlertSelectCategory)
	if !u.alertOpen {
		t.Fatalf("expected alert open")
	}
	if name, _ := u.pages.GetFrontPage(); name != pageAlert {
		t.Fatalf("expected alert in front, got %s", name)
	}
	u.captureInput(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone))
	if u.alertOpen {
		t.Fatalf("expected esc to close the alert")
	}
}

func press(list *tview.List, index int) {
	list.SetCurrentItem(index)
	list.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
}
