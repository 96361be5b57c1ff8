package app

import (
	"html"
	"math/rand"
	"sync"
	"time"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/opentdb"
)

// Normalizer turns raw API records into playable questions.
type Normalizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewNormalizer uses rnd for shuffling; nil seeds a source from the clock.
func NewNormalizer(rnd *rand.Rand) *Normalizer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Normalizer{rnd: rnd}
}

// Normalize decodes, shuffles and indexes every record.
func (n *Normalizer) Normalize(raw []opentdb.RawQuestion) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(raw))
	for _, item := range raw {
		q, err := n.normalizeOne(item)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (n *Normalizer) normalizeOne(item opentdb.RawQuestion) (domain.Question, error) {
	correct := html.UnescapeString(item.CorrectAnswer)

	answers := make([]string, 0, len(item.IncorrectAnswers)+1)
	for _, wrong := range item.IncorrectAnswers {
		answers = append(answers, html.UnescapeString(wrong))
	}
	answers = append(answers, correct)
	n.shuffle(answers)

	correctIndex := -1
	for i, answer := range answers {
		if answer == correct {
			correctIndex = i
			break
		}
	}
	if correctIndex < 0 {
		return domain.Question{}, domain.ErrCorrectAnswerMissing
	}

	return domain.Question{
		Text:         html.UnescapeString(item.Question),
		Difficulty:   domain.Difficulty(item.Difficulty),
		Answers:      answers,
		CorrectIndex: correctIndex,
	}, nil
}

// shuffle is a Fisher-Yates pass from the last element down.
func (n *Normalizer) shuffle(answers []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(answers) - 1; i > 0; i-- {
		j := n.rnd.Intn(i + 1)
		answers[i], answers[j] = answers[j], answers[i]
	}
}
