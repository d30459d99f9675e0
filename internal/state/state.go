// Package state holds the viewer's client-side domain state: the patients
// and diagnoses fetched from the patientor service and the patient currently
// in focus. State values are never modified after creation; every change
// goes through Reduce and yields a new value.
package state

import (
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

type State struct {
	Patients       map[string]patient.Patient
	DiagnosisList  map[string]patient.Diagnosis
	CurrentPatient *patient.Patient
}

// Initial returns the empty state a store starts from.
func Initial() State {
	return State{
		Patients:      map[string]patient.Patient{},
		DiagnosisList: map[string]patient.Diagnosis{},
	}
}

// Patient returns the patient with id from the patient map.
func (s State) Patient(id string) (patient.Patient, bool) {
	p, ok := s.Patients[id]
	return p, ok
}

// Diagnoses returns a lookup over the loaded diagnoses.
func (s State) Diagnoses() patient.DiagnosisLookup {
	return patient.NewDiagnosisLookup(s.DiagnosisList)
}
