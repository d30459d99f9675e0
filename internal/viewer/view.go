package viewer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/form"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/pkg/pagination"
)

type PatientRow struct {
	ID         string
	Name       string
	Gender     string
	GenderIcon string
	Occupation string
}

type ListPage struct {
	Title    string
	Patients []PatientRow
	Total    int
	Next     string
	Prev     string
	Modal    *PatientModal
}

// PatientModal is the add-patient dialog.
type PatientModal struct {
	Fields    []form.FieldState
	CanSubmit bool
	Error     string
}

type DiagnosisView struct {
	Code string
	Name string
}

type Detail struct {
	Label string
	Value string
}

type EntryView struct {
	ID          string
	Date        string
	Icon        string
	Label       string
	Description string
	Specialist  string
	Details     []Detail
	Diagnoses   []DiagnosisView
}

type PatientView struct {
	ID          string
	Name        string
	GenderIcon  string
	SSN         string
	Occupation  string
	DateOfBirth string
	Entries     []EntryView
}

type DetailPage struct {
	Title   string
	Patient *PatientView
	// EntryType is carried on the add-entry link so the selector reopens on
	// the last chosen variant.
	EntryType string
	Modal     *EntryModal
}

type TypeButton struct {
	Type   string
	Label  string
	Active bool
}

// EntryModal is the add-entry dialog: selector buttons on top, then either
// the prompt or the chosen form.
type EntryModal struct {
	PatientID string
	Types     []TypeButton
	Selected  string
	Prompt    string
	Fields    []form.FieldState
	CanSubmit bool
	Error     string
}

// SortedPatients orders a patient map by name, then id.
func SortedPatients(m map[string]patient.Patient) []patient.Patient {
	out := make([]patient.Patient, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b patient.Patient) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func newListPage(page pagination.Page[patient.Patient]) ListPage {
	rows := make([]PatientRow, 0, len(page.Items))
	for _, p := range page.Items {
		rows = append(rows, PatientRow{
			ID:         p.ID,
			Name:       p.Name,
			Gender:     string(p.Gender),
			GenderIcon: patient.GenderIcon(p.Gender),
			Occupation: p.Occupation,
		})
	}
	return ListPage{
		Title:    "Patient list",
		Patients: rows,
		Total:    page.Total,
		Next:     page.Next,
		Prev:     page.Prev,
	}
}

// NewPatientView resolves a patient record into its display form. Entries
// of an unknown type fail the whole view.
func NewPatientView(p patient.Patient, diagnoses patient.DiagnosisLookup) (*PatientView, error) {
	v := &PatientView{
		ID:          p.ID,
		Name:        p.Name,
		GenderIcon:  patient.GenderIcon(p.Gender),
		SSN:         p.SSN,
		Occupation:  p.Occupation,
		DateOfBirth: p.DateOfBirth,
	}
	for _, e := range p.Entries {
		ev, err := newEntryView(e, diagnoses)
		if err != nil {
			return nil, fmt.Errorf("patient %s: %w", p.ID, err)
		}
		v.Entries = append(v.Entries, ev)
	}
	return v, nil
}

func newEntryView(e patient.Entry, diagnoses patient.DiagnosisLookup) (EntryView, error) {
	icon, err := patient.EntryIcon(e)
	if err != nil {
		return EntryView{}, err
	}
	label, err := patient.EntryLabel(e.Type())
	if err != nil {
		return EntryView{}, err
	}
	b := e.Base()
	v := EntryView{
		ID:          b.ID,
		Date:        b.Date,
		Icon:        icon,
		Label:       label,
		Description: b.Description,
		Specialist:  b.Specialist,
	}

	switch e := e.(type) {
	case patient.HealthCheckEntry:
		v.Details = []Detail{{"Health rating", e.HealthCheckRating.String()}}
	case patient.HospitalEntry:
		v.Details = []Detail{
			{"Discharge date", e.Discharge.Date},
			{"Discharge criteria", e.Discharge.Criteria},
		}
	case patient.OccupationalHealthcareEntry:
		v.Details = []Detail{{"Employer", e.EmployerName}}
		if e.SickLeave != nil {
			v.Details = append(v.Details, Detail{"Sick leave", e.SickLeave.StartDate + " to " + e.SickLeave.EndDate})
		}
	default:
		return EntryView{}, &patient.UnknownEntryTypeError{Type: string(e.Type())}
	}

	for _, code := range b.DiagnosisCodes {
		name, _ := diagnoses.Name(code)
		v.Diagnoses = append(v.Diagnoses, DiagnosisView{Code: code, Name: name})
	}
	return v, nil
}

func newEntryModal(patientID string, selected patient.EntryType, f form.EntryForm) *EntryModal {
	m := &EntryModal{PatientID: patientID, Selected: string(selected)}
	for _, t := range patient.EntryTypes {
		label, _ := patient.EntryLabel(t)
		m.Types = append(m.Types, TypeButton{Type: string(t), Label: label, Active: t == selected})
	}
	if f == nil {
		m.Prompt = form.SelectorPrompt
		return m
	}
	m.Fields = f.Fields()
	m.CanSubmit = f.CanSubmit()
	return m
}

func newPatientModal(f *form.PatientForm) *PatientModal {
	return &PatientModal{Fields: f.Fields(), CanSubmit: f.CanSubmit()}
}
