package viewer

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/platform/apiclient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/state"
)

// PatientService is the remote patientor service. *apiclient.Client
// implements it.
type PatientService interface {
	Ping(ctx context.Context) error
	ListPatients(ctx context.Context) ([]patient.Patient, error)
	ListDiagnoses(ctx context.Context) ([]patient.Diagnosis, error)
	GetPatient(ctx context.Context, id string) (patient.Patient, error)
	AddPatient(ctx context.Context, np patient.NewPatient) (patient.Patient, error)
	AddEntry(ctx context.Context, id string, e patient.Entry) error
}

// Loader fetches from the service and dispatches the results to the store.
// Read failures are logged and swallowed; the store keeps whatever it had.
type Loader struct {
	svc    PatientService
	store  *state.Store
	logger zerolog.Logger
}

func NewLoader(svc PatientService, store *state.Store, logger zerolog.Logger) *Loader {
	return &Loader{svc: svc, store: store, logger: logger}
}

// LoadInitial pings the service, then loads the diagnosis list and the
// patient list. Each step runs even if an earlier one failed.
func (l *Loader) LoadInitial(ctx context.Context) {
	if err := l.svc.Ping(ctx); err != nil {
		l.logger.Warn().Err(err).Msg("ping failed")
	}
	l.RefreshDiagnoses(ctx)
	l.RefreshPatients(ctx)
}

// RefreshDiagnoses merges the service's diagnosis list into the store.
func (l *Loader) RefreshDiagnoses(ctx context.Context) error {
	diagnoses, err := l.svc.ListDiagnoses(ctx)
	if err != nil {
		l.logger.Error().Err(err).Str("op", apiclient.OpListDiagnoses).Msg("fetch failed")
		return err
	}
	l.store.Dispatch(state.NewSetDiagnosisList(diagnoses))
	return nil
}

// RefreshPatients merges the service's patient list into the store. Patients
// already known keep their stored record.
func (l *Loader) RefreshPatients(ctx context.Context) error {
	patients, err := l.svc.ListPatients(ctx)
	if err != nil {
		l.logger.Error().Err(err).Str("op", apiclient.OpListPatients).Msg("fetch failed")
		return err
	}
	l.store.Dispatch(state.NewSetPatientList(patients))
	return nil
}

// LoadPatient makes the patient with id the current patient. The service is
// only asked when the current patient is absent or a different one.
func (l *Loader) LoadPatient(ctx context.Context, id string) (patient.Patient, error) {
	if id == "" {
		l.logger.Error().Err(apiclient.ErrMissingPatientID).Msg("cannot load patient")
		return patient.Patient{}, apiclient.ErrMissingPatientID
	}
	if cur := l.store.State().CurrentPatient; cur != nil && cur.ID == id {
		return *cur, nil
	}
	return l.fetchPatient(ctx, id)
}

func (l *Loader) fetchPatient(ctx context.Context, id string) (patient.Patient, error) {
	p, err := l.svc.GetPatient(ctx, id)
	if err != nil {
		l.logger.Error().Err(err).Str("op", apiclient.OpGetPatient).Str("patient_id", id).Msg("fetch failed")
		return patient.Patient{}, err
	}
	l.store.Dispatch(state.NewSetPatient(p))
	return p, nil
}

// SubmitEntry posts e to the patient's record and reloads the patient. The
// reloaded record becomes the current patient and replaces the list copy.
// A rejection by the service is returned as is so the form can show it.
//
// Only the post decides the outcome. Once the service has stored the entry a
// failed reload is logged and the current patient cleared, so the next view
// fetches it again; the error is not returned.
func (l *Loader) SubmitEntry(ctx context.Context, id string, e patient.Entry) error {
	if id == "" {
		l.logger.Error().Err(apiclient.ErrMissingPatientID).Msg("cannot submit entry")
		return apiclient.ErrMissingPatientID
	}
	if err := l.svc.AddEntry(ctx, id, e); err != nil {
		l.logger.Warn().Err(err).Str("op", apiclient.OpAddEntry).Str("patient_id", id).Msg("entry rejected")
		return err
	}
	p, err := l.fetchPatient(ctx, id)
	if err != nil {
		l.logger.Warn().Err(err).Str("patient_id", id).Msg("entry stored, reload failed")
		l.store.Dispatch(state.ClearPatient{})
		return nil
	}
	l.store.Dispatch(state.NewAddPatient(p))
	return nil
}

// AddPatient creates a patient and adds it to the list.
func (l *Loader) AddPatient(ctx context.Context, np patient.NewPatient) (patient.Patient, error) {
	p, err := l.svc.AddPatient(ctx, np)
	if err != nil {
		l.logger.Warn().Err(err).Str("op", apiclient.OpAddPatient).Msg("patient rejected")
		return patient.Patient{}, err
	}
	l.store.Dispatch(state.NewAddPatient(p))
	return p, nil
}

// RejectionMessage returns the text shown in a form's error banner, or ""
// when err is not a rejection by the service.
func RejectionMessage(err error) string {
	var se *apiclient.ServiceError
	if errors.As(err, &se) {
		return se.Error()
	}
	return ""
}
