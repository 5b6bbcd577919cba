package briefing

import "audio-briefing/src/core/domain"

// History is the ordered list of visited steps. It is never empty,
// starts at the start step and its last element is the current step.
type History struct {
	start domain.StepID
	steps []domain.StepID
}

func NewHistory(start domain.StepID) *History {
	return &History{start: start, steps: []domain.StepID{start}}
}

func (h *History) Push(step domain.StepID) {
	h.steps = append(h.steps, step)
}

// Pop removes the current step. At length 1 it does nothing and returns false.
func (h *History) Pop() bool {
	if len(h.steps) <= 1 {
		return false
	}
	h.steps = h.steps[:len(h.steps)-1]
	return true
}

func (h *History) Current() domain.StepID {
	return h.steps[len(h.steps)-1]
}

func (h *History) Len() int {
	return len(h.steps)
}

// Steps returns a copy of the visited steps
func (h *History) Steps() []domain.StepID {
	out := make([]domain.StepID, len(h.steps))
	copy(out, h.steps)
	return out
}

// Reset goes back to the start step
func (h *History) Reset() {
	h.steps = []domain.StepID{h.start}
}
