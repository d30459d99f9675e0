// Package form implements the add-entry and add-patient form controllers.
// A controller owns its field values, re-validates on every change and hands
// a typed value object to its submit handler.
package form

import (
	"context"
	"errors"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

// MsgRequired is reported for every missing required field.
const MsgRequired = "Field is required"

// ErrNotSubmittable is returned by Submit when validation fails or nothing
// has been edited yet.
var ErrNotSubmittable = errors.New("form is not submittable")

// Field is the input name of a form field.
type Field string

const (
	FieldDescription       Field = "description"
	FieldDate              Field = "date"
	FieldSpecialist        Field = "specialist"
	FieldDiagnosisCodes    Field = "diagnosisCodes"
	FieldHealthCheckRating Field = "healthCheckRating"
	FieldDischargeDate     Field = "discharge.date"
	FieldDischargeCriteria Field = "discharge.criteria"
	FieldEmployerName      Field = "employerName"
	FieldSickLeaveStart    Field = "sickLeave.startDate"
	FieldSickLeaveEnd      Field = "sickLeave.endDate"

	FieldName        Field = "name"
	FieldSSN         Field = "ssn"
	FieldDateOfBirth Field = "dateOfBirth"
	FieldOccupation  Field = "occupation"
	FieldGender      Field = "gender"
)

// Errors maps a field to its validation message. An empty map means valid.
type Errors map[Field]string

func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

func (e Errors) Empty() bool { return len(e) == 0 }

func required(errs Errors, f Field, v string) {
	if v == "" {
		errs[f] = MsgRequired
	}
}

// Kind tells a renderer which input to draw for a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindSelect
	KindMultiSelect
)

type Option struct {
	Value string
	Label string
}

// FieldState is a render-ready snapshot of one field.
type FieldState struct {
	Name        Field
	Label       string
	Placeholder string
	Kind        Kind
	Value       string
	Selected    []string
	Options     []Option
	Min, Max    int
	Error       string
}

// IsSelected reports whether value is among the selected options.
func (f FieldState) IsSelected(value string) bool {
	if f.Kind == KindSelect {
		return f.Value == value
	}
	for _, s := range f.Selected {
		if s == value {
			return true
		}
	}
	return false
}

// SubmitEntryFunc receives the entry built by a form. The entry has no id.
type SubmitEntryFunc func(ctx context.Context, e patient.Entry) error

// EntryHandlers are the callbacks of the host surface.
type EntryHandlers struct {
	OnSubmit SubmitEntryFunc
	OnCancel func()
}

// EntryForm is implemented by the three entry form controllers.
type EntryForm interface {
	EntryType() patient.EntryType
	Set(f Field, value string) Errors
	SetDiagnosisCodes(codes []string) Errors
	Errors() Errors
	Dirty() bool
	CanSubmit() bool
	Fields() []FieldState
	Value() patient.Entry
	Submit(ctx context.Context) error
	Cancel()
}

// NewEntryForm returns the controller for t.
func NewEntryForm(t patient.EntryType, diagnoses map[string]patient.Diagnosis, h EntryHandlers) (EntryForm, error) {
	switch t {
	case patient.TypeHealthCheck:
		return NewHealthCheckForm(diagnoses, h), nil
	case patient.TypeHospital:
		return NewHospitalForm(diagnoses, h), nil
	case patient.TypeOccupationalHealthcare:
		return NewOccupationalHealthcareForm(diagnoses, h), nil
	default:
		return nil, &patient.UnknownEntryTypeError{Type: string(t)}
	}
}

// ValidateEntry applies the form rules to an entry value. Controllers run it
// on the value they would submit, so a submitted entry always passes it.
func ValidateEntry(e patient.Entry) (Errors, error) {
	errs := Errors{}
	if e == nil {
		return nil, &patient.UnknownEntryTypeError{Type: "<nil>"}
	}
	b := e.Base()
	required(errs, FieldDescription, b.Description)
	required(errs, FieldDate, b.Date)
	required(errs, FieldSpecialist, b.Specialist)

	switch e := e.(type) {
	case patient.HealthCheckEntry:
		// A zero rating counts as unset.
		if e.HealthCheckRating == patient.RatingHealthy {
			errs[FieldHealthCheckRating] = MsgRequired
		} else if !e.HealthCheckRating.Valid() {
			errs[FieldHealthCheckRating] = msgRatingRange
		}
	case patient.HospitalEntry:
		required(errs, FieldDischargeDate, e.Discharge.Date)
		required(errs, FieldDischargeCriteria, e.Discharge.Criteria)
	case patient.OccupationalHealthcareEntry:
		required(errs, FieldEmployerName, e.EmployerName)
	default:
		return nil, &patient.UnknownEntryTypeError{Type: string(e.Type())}
	}
	return errs, nil
}
