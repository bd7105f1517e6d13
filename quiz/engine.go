package quiz

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrUnknownOption = errors.New("not an option of the current question")
	ErrResolved      = errors.New("quiz already resolved")
)

// Outcome is the terminal state of a quiz. A nil Result means no mapping matched.
type Outcome struct {
	Result *Result
}

func (o Outcome) Matched() bool {
	return o.Result != nil
}

// Message is the line shown to the visitor for this outcome.
func (o Outcome) Message() string {
	if o.Result == nil {
		return NoMatchMessage
	}
	return o.Result.Message
}

// Engine walks a visitor through the questions in order. It is not safe for
// concurrent use; each visitor gets its own engine.
type Engine struct {
	config  Config
	index   int
	answers []string
	indices []int
	outcome *Outcome
}

func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Normalize strips every whitespace rune so "Long walks" and "Longwalks" compare equal.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Current returns the question being asked, or false once resolved.
func (e *Engine) Current() (Question, bool) {
	if e.outcome != nil {
		return Question{}, false
	}
	return e.config.Questions[e.index], true
}

// Index is the zero-based position of the current question.
func (e *Engine) Index() int {
	return e.index
}

func (e *Engine) Total() int {
	return len(e.config.Questions)
}

// Answers returns the normalized answers collected so far.
func (e *Engine) Answers() []string {
	out := make([]string, len(e.answers))
	copy(out, e.answers)
	return out
}

func (e *Engine) Resolved() bool {
	return e.outcome != nil
}

func (e *Engine) Outcome() (Outcome, bool) {
	if e.outcome == nil {
		return Outcome{}, false
	}
	return *e.outcome, true
}

// Answer records the option whose normalized text equals choice.
func (e *Engine) Answer(choice string) error {
	question, ok := e.Current()
	if !ok {
		return ErrResolved
	}
	key := Normalize(choice)
	for i, option := range question.Options {
		if Normalize(option) == key {
			return e.AnswerIndex(i)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownOption, choice)
}

// AnswerIndex records the i-th option of the current question.
func (e *Engine) AnswerIndex(i int) error {
	question, ok := e.Current()
	if !ok {
		return ErrResolved
	}
	if i < 0 || i >= len(question.Options) {
		return fmt.Errorf("%w: index %d", ErrUnknownOption, i)
	}

	e.answers = append(e.answers, Normalize(question.Options[i]))
	e.indices = append(e.indices, i)

	if e.index == len(e.config.Questions)-1 {
		e.outcome = &Outcome{Result: e.config.lookup(e.indices)}
		return nil
	}
	e.index++
	return nil
}

func (e *Engine) Restart() {
	e.index = 0
	e.answers = nil
	e.indices = nil
	e.outcome = nil
}

// ResolveAnswers runs a fresh engine over a complete list of choices. Free
// text that is not one of a question's options cannot be mapped, so it
// resolves to the no-match outcome.
func ResolveAnswers(config Config, choices []string) (Outcome, error) {
	if len(choices) != len(config.Questions) {
		return Outcome{}, fmt.Errorf("got %d answers, want %d", len(choices), len(config.Questions))
	}
	engine := NewEngine(config)
	for _, choice := range choices {
		if err := engine.Answer(choice); err != nil {
			if errors.Is(err, ErrUnknownOption) {
				return Outcome{}, nil
			}
			return Outcome{}, err
		}
	}
	outcome, _ := engine.Outcome()
	return outcome, nil
}
