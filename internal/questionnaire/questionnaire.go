// Package questionnaire keeps the in-progress answers of every user until a
// schedule is generated from them.
package questionnaire

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kiruthikag2611/Planify/internal/validation"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrNoRole          = errors.New("role is not selected")
	ErrIncomplete      = errors.New("questionnaire is not complete")
)

func Categories() []string {
	names := make([]string, 0, len(questionSets))
	for name := range questionSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func SubCategories(category string) ([]string, error) {
	subs, ok := questionSets[category]
	if !ok {
		return nil, fmt.Errorf("%q: %w", category, ErrUnknownCategory)
	}
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func Questions(category, subCategory string) ([]Question, error) {
	qs, ok := questionSets[category][subCategory]
	if !ok {
		return nil, fmt.Errorf("%q/%q: %w", category, subCategory, ErrUnknownCategory)
	}
	return qs, nil
}

type State struct {
	Category    string            `json:"category"`
	SubCategory string            `json:"subCategory"`
	Answers     map[string]string `json:"answers"`
}

// Select picks the question set. Answers of a previous set are dropped.
func (s *State) Select(category, subCategory string) error {
	if _, err := Questions(category, subCategory); err != nil {
		return err
	}
	if s.Category != category || s.SubCategory != subCategory {
		s.Answers = make(map[string]string)
	}
	s.Category = category
	s.SubCategory = subCategory
	return nil
}

// UpdateAnswer merges one answer into the state.
func (s *State) UpdateAnswer(questionID, value string) error {
	qs, err := Questions(s.Category, s.SubCategory)
	if err != nil {
		return err
	}
	if !hasQuestion(qs, questionID) {
		return fmt.Errorf("%q: %w", questionID, ErrUnknownQuestion)
	}
	if err := validation.Var(questionID, value, "notblank"); err != nil {
		return err
	}
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	s.Answers[questionID] = value
	return nil
}

func (s *State) Reset() {
	*s = State{}
}

// Missing lists the unanswered questions of the selected set in order.
func (s State) Missing() []string {
	qs, err := Questions(s.Category, s.SubCategory)
	if err != nil {
		return nil
	}
	missing := make([]string, 0)
	for _, q := range qs {
		if strings.TrimSpace(s.Answers[q.ID]) == "" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// FormattedAnswers returns the answers with the capitalised role added.
func (s State) FormattedAnswers() (map[string]string, error) {
	if s.SubCategory == "" {
		return nil, ErrNoRole
	}
	formatted := make(map[string]string, len(s.Answers)+1)
	for k, v := range s.Answers {
		formatted[k] = v
	}
	formatted["role"] = strings.ToUpper(s.SubCategory[:1]) + s.SubCategory[1:]
	return formatted, nil
}

func (s State) clone() State {
	c := s
	c.Answers = make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		c.Answers[k] = v
	}
	return c
}

func hasQuestion(qs []Question, id string) bool {
	for _, q := range qs {
		if q.ID == id {
			return true
		}
	}
	return false
}

// Registry holds one State per user for the lifetime of the process.
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
}

func NewRegistry() *Registry {
	return &Registry{states: make(map[string]*State)}
}

func (r *Registry) Get(userID string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[userID]
	if !ok {
		return State{Answers: map[string]string{}}
	}
	return s.clone()
}

// Update applies fn to the user's state; the state is left unchanged when fn
// fails.
func (r *Registry) Update(userID string, fn func(*State) error) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.states[userID]
	if !ok {
		current = &State{}
	}
	next := current.clone()
	if err := fn(&next); err != nil {
		return current.clone(), err
	}
	r.states[userID] = &next
	return next.clone(), nil
}

func (r *Registry) Reset(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, userID)
}
