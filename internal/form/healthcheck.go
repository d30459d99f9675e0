package form

import (
	"strconv"
	"strings"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

const msgRatingRange = "Rating must be a whole number between 0 and 3"

// HealthCheckForm builds HealthCheck entries. The rating starts at 0, which
// validation treats as unset.
type HealthCheckForm struct {
	*controller
	rating      patient.HealthCheckRating
	ratingInput string
	ratingBad   bool
}

func NewHealthCheckForm(diagnoses map[string]patient.Diagnosis, h EntryHandlers) *HealthCheckForm {
	f := &HealthCheckForm{ratingInput: "0"}
	f.controller = newController(f, diagnoses, h)
	return f
}

// Entry returns the typed value the form would submit.
func (f *HealthCheckForm) Entry() patient.HealthCheckEntry {
	return f.Value().(patient.HealthCheckEntry)
}

func (f *HealthCheckForm) entryType() patient.EntryType { return patient.TypeHealthCheck }

func (f *HealthCheckForm) set(field Field, value string) bool {
	if field != FieldHealthCheckRating {
		return false
	}
	f.ratingInput = value
	if strings.TrimSpace(value) == "" {
		// Blank is unset, which validation reports as required.
		f.ratingBad = false
		f.rating = patient.RatingHealthy
		return true
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		f.ratingBad = true
		return true
	}
	f.ratingBad = false
	f.rating = patient.HealthCheckRating(n)
	return true
}

func (f *HealthCheckForm) inputErrors(errs Errors) {
	if f.ratingBad {
		errs[FieldHealthCheckRating] = msgRatingRange
	}
}

func (f *HealthCheckForm) dirty() bool {
	return f.rating != patient.RatingHealthy || f.ratingBad
}

func (f *HealthCheckForm) reset() {
	f.rating = patient.RatingHealthy
	f.ratingInput = "0"
	f.ratingBad = false
}

func (f *HealthCheckForm) fields() []FieldState {
	return []FieldState{{
		Name:        FieldHealthCheckRating,
		Label:       "Rating",
		Placeholder: "Pick between 0-3",
		Kind:        KindNumber,
		Value:       f.ratingInput,
		Min:         int(patient.RatingHealthy),
		Max:         int(patient.RatingCriticalRisk),
	}}
}

func (f *HealthCheckForm) build(base patient.BaseEntry) patient.Entry {
	return patient.HealthCheckEntry{BaseEntry: base, HealthCheckRating: f.rating}
}
