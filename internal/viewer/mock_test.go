package viewer

import (
	"context"
	"sync"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/platform/apiclient"
)

// mockService is an in-memory PatientService.
type mockService struct {
	mu        sync.Mutex
	patients  map[string]patient.Patient
	diagnoses []patient.Diagnosis

	pingErr      error
	listErr      error
	diagnosesErr error
	addEntryErr  error
	addPatErr    error
	getErr       error

	calls   []string
	entries []patient.Entry
}

func newMockService() *mockService {
	return &mockService{
		patients: map[string]patient.Patient{
			"p1": {
				ID: "p1", Name: "John McClane", Occupation: "New york city cop", Gender: patient.GenderMale,
				SSN: "090786-122X", DateOfBirth: "1986-07-09",
				Entries: patient.Entries{
					patient.HospitalEntry{
						BaseEntry: patient.BaseEntry{ID: "e1", Description: "Thumb fracture.", Date: "2015-01-02",
							Specialist: "MD House", DiagnosisCodes: []string{"S62.5", "Z99.9"}},
						Discharge: patient.Discharge{Date: "2015-01-16", Criteria: "Thumb has healed."},
					},
				},
			},
			"p2": {ID: "p2", Name: "Dana Scully", Occupation: "Forensic Pathologist", Gender: patient.GenderFemale},
		},
		diagnoses: []patient.Diagnosis{
			{Code: "S62.5", Name: "Fracture of thumb"},
			{Code: "J10.1", Name: "Influenza"},
		},
	}
}

func (m *mockService) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
}

func (m *mockService) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (m *mockService) Ping(ctx context.Context) error {
	m.record(apiclient.OpPing)
	return m.pingErr
}

func (m *mockService) ListPatients(ctx context.Context) ([]patient.Patient, error) {
	m.record(apiclient.OpListPatients)
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]patient.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		// The list endpoint leaves out ssn and entries.
		out = append(out, patient.Patient{ID: p.ID, Name: p.Name, Occupation: p.Occupation, Gender: p.Gender, DateOfBirth: p.DateOfBirth})
	}
	return out, nil
}

func (m *mockService) ListDiagnoses(ctx context.Context) ([]patient.Diagnosis, error) {
	m.record(apiclient.OpListDiagnoses)
	if m.diagnosesErr != nil {
		return nil, m.diagnosesErr
	}
	return m.diagnoses, nil
}

func (m *mockService) GetPatient(ctx context.Context, id string) (patient.Patient, error) {
	m.record(apiclient.OpGetPatient)
	if m.getErr != nil {
		return patient.Patient{}, m.getErr
	}
	if id == "" {
		return patient.Patient{}, apiclient.ErrMissingPatientID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return patient.Patient{}, &apiclient.ServiceError{Op: apiclient.OpGetPatient, StatusCode: 404, Message: "patient not found"}
	}
	return p, nil
}

func (m *mockService) AddPatient(ctx context.Context, np patient.NewPatient) (patient.Patient, error) {
	m.record(apiclient.OpAddPatient)
	if m.addPatErr != nil {
		return patient.Patient{}, m.addPatErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := patient.Patient{ID: "new-" + np.SSN, Name: np.Name, Occupation: np.Occupation, Gender: np.Gender, SSN: np.SSN, DateOfBirth: np.DateOfBirth}
	m.patients[p.ID] = p
	return p, nil
}

func (m *mockService) AddEntry(ctx context.Context, id string, e patient.Entry) error {
	m.record(apiclient.OpAddEntry)
	if m.addEntryErr != nil {
		return m.addEntryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return &apiclient.ServiceError{Op: apiclient.OpAddEntry, StatusCode: 404, Message: "patient not found"}
	}
	m.entries = append(m.entries, e)
	p.Entries = append(append(patient.Entries{}, p.Entries...), e)
	m.patients[id] = p
	return nil
}
