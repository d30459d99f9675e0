package form

import (
	"context"
	"fmt"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

const msgInvalidGender = "Gender must be male, female or other"

// SubmitPatientFunc receives the patient built by a PatientForm.
type SubmitPatientFunc func(ctx context.Context, p patient.NewPatient) error

type PatientHandlers struct {
	OnSubmit SubmitPatientFunc
	OnCancel func()
}

// PatientForm builds a new patient. Gender starts as "other".
type PatientForm struct {
	handlers PatientHandlers
	values   patient.NewPatient
	touched  map[Field]bool
	errors   Errors
}

func initialPatient() patient.NewPatient {
	return patient.NewPatient{Gender: patient.GenderOther}
}

func NewPatientForm(h PatientHandlers) *PatientForm {
	f := &PatientForm{handlers: h, values: initialPatient(), touched: map[Field]bool{}}
	f.validate()
	return f
}

func (f *PatientForm) Set(field Field, value string) Errors {
	switch field {
	case FieldName:
		f.values.Name = value
	case FieldSSN:
		f.values.SSN = value
	case FieldDateOfBirth:
		f.values.DateOfBirth = value
	case FieldOccupation:
		f.values.Occupation = value
	case FieldGender:
		f.values.Gender = patient.Gender(value)
	default:
		return f.Errors()
	}
	f.touched[field] = true
	f.validate()
	return f.Errors()
}

func (f *PatientForm) Errors() Errors {
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *PatientForm) Dirty() bool { return f.values != initialPatient() }

func (f *PatientForm) CanSubmit() bool { return f.errors.Empty() && f.Dirty() }

func (f *PatientForm) Value() patient.NewPatient { return f.values }

func (f *PatientForm) Submit(ctx context.Context) error {
	f.validate()
	if !f.errors.Empty() {
		return fmt.Errorf("%w: %d invalid field(s)", ErrNotSubmittable, len(f.errors))
	}
	if !f.Dirty() {
		return fmt.Errorf("%w: no field has been changed", ErrNotSubmittable)
	}
	if f.handlers.OnSubmit == nil {
		return nil
	}
	return f.handlers.OnSubmit(ctx, f.values)
}

func (f *PatientForm) Cancel() {
	f.values = initialPatient()
	f.touched = map[Field]bool{}
	f.validate()
	if f.handlers.OnCancel != nil {
		f.handlers.OnCancel()
	}
}

func (f *PatientForm) Fields() []FieldState {
	genders := make([]Option, 0, len(patient.Genders))
	for _, g := range patient.Genders {
		genders = append(genders, Option{Value: string(g), Label: string(g)})
	}
	fields := []FieldState{
		{Name: FieldName, Label: "Name", Placeholder: "Name", Kind: KindText, Value: f.values.Name},
		{Name: FieldSSN, Label: "Social Security Number", Placeholder: "SSN", Kind: KindText, Value: f.values.SSN},
		{Name: FieldDateOfBirth, Label: "Date Of Birth", Placeholder: "YYYY-MM-DD", Kind: KindText, Value: f.values.DateOfBirth},
		{Name: FieldOccupation, Label: "Occupation", Placeholder: "Occupation", Kind: KindText, Value: f.values.Occupation},
		{Name: FieldGender, Label: "Gender", Kind: KindSelect, Value: string(f.values.Gender), Options: genders},
	}
	for i := range fields {
		if f.touched[fields[i].Name] {
			fields[i].Error = f.errors[fields[i].Name]
		}
	}
	return fields
}

// ValidatePatient applies the add-patient rules to p.
func ValidatePatient(p patient.NewPatient) Errors {
	errs := Errors{}
	required(errs, FieldName, p.Name)
	required(errs, FieldSSN, p.SSN)
	required(errs, FieldDateOfBirth, p.DateOfBirth)
	required(errs, FieldOccupation, p.Occupation)
	if !p.Gender.Valid() {
		errs[FieldGender] = msgInvalidGender
	}
	return errs
}

func (f *PatientForm) validate() {
	f.errors = ValidatePatient(f.values)
}
