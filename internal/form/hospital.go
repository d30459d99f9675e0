package form

import (
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

// HospitalForm builds Hospital entries. Discharge date and criteria are
// validated independently of each other.
type HospitalForm struct {
	*controller
	discharge patient.Discharge
}

func NewHospitalForm(diagnoses map[string]patient.Diagnosis, h EntryHandlers) *HospitalForm {
	f := &HospitalForm{}
	f.controller = newController(f, diagnoses, h)
	return f
}

// Entry returns the typed value the form would submit.
func (f *HospitalForm) Entry() patient.HospitalEntry {
	return f.Value().(patient.HospitalEntry)
}

func (f *HospitalForm) entryType() patient.EntryType { return patient.TypeHospital }

func (f *HospitalForm) set(field Field, value string) bool {
	switch field {
	case FieldDischargeDate:
		f.discharge.Date = value
	case FieldDischargeCriteria:
		f.discharge.Criteria = value
	default:
		return false
	}
	return true
}

func (f *HospitalForm) inputErrors(Errors) {}

func (f *HospitalForm) dirty() bool {
	return f.discharge != patient.Discharge{}
}

func (f *HospitalForm) reset() {
	f.discharge = patient.Discharge{}
}

func (f *HospitalForm) fields() []FieldState {
	return []FieldState{
		{Name: FieldDischargeDate, Label: "Discharge Date", Placeholder: "YYYY-MM-DD", Kind: KindText, Value: f.discharge.Date},
		{Name: FieldDischargeCriteria, Label: "Discharge Criteria", Placeholder: "Enter criteria here", Kind: KindText, Value: f.discharge.Criteria},
	}
}

func (f *HospitalForm) build(base patient.BaseEntry) patient.Entry {
	return patient.HospitalEntry{BaseEntry: base, Discharge: f.discharge}
}
