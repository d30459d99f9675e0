package form

import (
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

// SelectorPrompt is shown while no entry type has been chosen.
const SelectorPrompt = "Select your type of entry with the menu above"

// Selector picks which entry form the add-entry surface shows. Its states
// are unselected plus one per entry type.
type Selector struct {
	current       patient.EntryType
	resetOnSubmit bool
}

// NewSelector returns an unselected selector. With resetOnSubmit the
// selector returns to unselected after a successful submission; otherwise
// it stays on the last chosen type.
func NewSelector(resetOnSubmit bool) *Selector {
	return &Selector{resetOnSubmit: resetOnSubmit}
}

// Current returns the chosen type; ok is false while unselected.
func (s *Selector) Current() (t patient.EntryType, ok bool) {
	return s.current, s.current != ""
}

// Choose moves to the state for t.
func (s *Selector) Choose(t patient.EntryType) error {
	parsed, err := patient.ParseEntryType(string(t))
	if err != nil {
		return err
	}
	s.current = parsed
	return nil
}

// Restore sets the selector from a serialized value; an empty string means
// unselected.
func (s *Selector) Restore(v string) error {
	if v == "" {
		s.current = ""
		return nil
	}
	return s.Choose(patient.EntryType(v))
}

// Submitted records a successful submission.
func (s *Selector) Submitted() {
	if s.resetOnSubmit {
		s.current = ""
	}
}

// Cancelled records a cancelled form. The choice is kept.
func (s *Selector) Cancelled() {}

// Form builds the controller for the current state. It returns nil while
// unselected; the host then shows SelectorPrompt.
func (s *Selector) Form(diagnoses map[string]patient.Diagnosis, h EntryHandlers) (EntryForm, error) {
	t, ok := s.Current()
	if !ok {
		return nil, nil
	}
	return NewEntryForm(t, diagnoses, h)
}
