package state

import (
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

// ActionType names a state transition.
type ActionType string

const (
	ActionSetPatientList   ActionType = "SET_PATIENT_LIST"
	ActionAddPatient       ActionType = "ADD_PATIENT"
	ActionSetPatient       ActionType = "SET_PATIENT"
	ActionSetDiagnosisList ActionType = "SET_DIAGNOSIS_LIST"
	ActionClearPatient     ActionType = "CLEAR_PATIENT"
)

// Action is anything that can be dispatched to a Store. Actions the reducer
// does not recognize leave the state untouched.
type Action interface {
	Type() ActionType
}

// SetPatientList merges a batch of (usually summary) patients into the
// patient map. Patients already in state are kept.
type SetPatientList struct {
	Payload []patient.Patient
}

func (SetPatientList) Type() ActionType { return ActionSetPatientList }

// AddPatient inserts or replaces a single patient.
type AddPatient struct {
	Payload patient.Patient
}

func (AddPatient) Type() ActionType { return ActionAddPatient }

// SetPatient replaces the currently focused patient.
type SetPatient struct {
	Payload patient.Patient
}

func (SetPatient) Type() ActionType { return ActionSetPatient }

// SetDiagnosisList merges diagnoses into the diagnosis map. Diagnoses already
// in state are kept.
type SetDiagnosisList struct {
	Payload []patient.Diagnosis
}

func (SetDiagnosisList) Type() ActionType { return ActionSetDiagnosisList }

// ClearPatient drops the currently focused patient so the next view fetches
// it again.
type ClearPatient struct{}

func (ClearPatient) Type() ActionType { return ActionClearPatient }

func NewSetPatientList(patients []patient.Patient) SetPatientList {
	return SetPatientList{Payload: patients}
}

func NewAddPatient(p patient.Patient) AddPatient {
	return AddPatient{Payload: p}
}

func NewSetPatient(p patient.Patient) SetPatient {
	return SetPatient{Payload: p}
}

func NewSetDiagnosisList(diagnoses []patient.Diagnosis) SetDiagnosisList {
	return SetDiagnosisList{Payload: diagnoses}
}
