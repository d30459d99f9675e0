package form

import (
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

// OccupationalHealthcareForm builds OccupationalHealthcare entries. Sick
// leave is optional; it is left out of the entry when both dates are empty.
type OccupationalHealthcareForm struct {
	*controller
	employerName string
	sickLeave    patient.SickLeave
}

func NewOccupationalHealthcareForm(diagnoses map[string]patient.Diagnosis, h EntryHandlers) *OccupationalHealthcareForm {
	f := &OccupationalHealthcareForm{}
	f.controller = newController(f, diagnoses, h)
	return f
}

// Entry returns the typed value the form would submit.
func (f *OccupationalHealthcareForm) Entry() patient.OccupationalHealthcareEntry {
	return f.Value().(patient.OccupationalHealthcareEntry)
}

func (f *OccupationalHealthcareForm) entryType() patient.EntryType {
	return patient.TypeOccupationalHealthcare
}

func (f *OccupationalHealthcareForm) set(field Field, value string) bool {
	switch field {
	case FieldEmployerName:
		f.employerName = value
	case FieldSickLeaveStart:
		f.sickLeave.StartDate = value
	case FieldSickLeaveEnd:
		f.sickLeave.EndDate = value
	default:
		return false
	}
	return true
}

func (f *OccupationalHealthcareForm) inputErrors(Errors) {}

func (f *OccupationalHealthcareForm) dirty() bool {
	return f.employerName != "" || f.sickLeave != patient.SickLeave{}
}

func (f *OccupationalHealthcareForm) reset() {
	f.employerName = ""
	f.sickLeave = patient.SickLeave{}
}

func (f *OccupationalHealthcareForm) fields() []FieldState {
	return []FieldState{
		{Name: FieldSickLeaveStart, Label: "Start Date", Placeholder: "YYYY-MM-DD", Kind: KindText, Value: f.sickLeave.StartDate},
		{Name: FieldSickLeaveEnd, Label: "End Date", Placeholder: "YYYY-MM-DD", Kind: KindText, Value: f.sickLeave.EndDate},
		{Name: FieldEmployerName, Label: "Employer Name", Placeholder: "Enter Employer Name", Kind: KindText, Value: f.employerName},
	}
}

func (f *OccupationalHealthcareForm) build(base patient.BaseEntry) patient.Entry {
	e := patient.OccupationalHealthcareEntry{BaseEntry: base, EmployerName: f.employerName}
	if f.sickLeave != (patient.SickLeave{}) {
		sl := f.sickLeave
		e.SickLeave = &sl
	}
	return e
}
