package state

import (
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

// Reducer computes the next state for an action.
type Reducer func(State, Action) State

// Reduce is the viewer's reducer. It never writes to the maps of s; changed
// maps are copied so earlier snapshots stay valid.
//
// List actions merge with the existing entries taking precedence: a list
// endpoint returns summary records without entries, and a refresh must not
// clobber a detailed record loaded earlier. AddPatient is the opposite, the
// incoming record wins.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetPatientList:
		next := s
		next.Patients = mergeKeepExisting(s.Patients, a.Payload, func(p patient.Patient) string { return p.ID })
		return next
	case AddPatient:
		next := s
		next.Patients = copyMap(s.Patients, 1)
		next.Patients[a.Payload.ID] = a.Payload
		return next
	case SetPatient:
		next := s
		p := a.Payload
		next.CurrentPatient = &p
		return next
	case ClearPatient:
		next := s
		next.CurrentPatient = nil
		return next
	case SetDiagnosisList:
		next := s
		next.DiagnosisList = mergeKeepExisting(s.DiagnosisList, a.Payload, func(d patient.Diagnosis) string { return d.Code })
		return next
	default:
		return s
	}
}

func mergeKeepExisting[V any](existing map[string]V, incoming []V, key func(V) string) map[string]V {
	out := copyMap(existing, len(incoming))
	for _, v := range incoming {
		k := key(v)
		if _, ok := existing[k]; ok {
			continue
		}
		out[k] = v
	}
	return out
}

func copyMap[V any](m map[string]V, extra int) map[string]V {
	out := make(map[string]V, len(m)+extra)
	for k, v := range m {
		out[k] = v
	}
	return out
}
