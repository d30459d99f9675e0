package patient

import (
	"encoding/json"
	"errors"
	"testing"
)

const fullPatientJSON = `{
	"id": "d2773336-f723-11e9-8f0b-362b9e155667",
	"name": "John McClane",
	"dateOfBirth": "1986-07-09",
	"ssn": "090786-122X",
	"gender": "male",
	"occupation": "New york city cop",
	"entries": [
		{"id":"d811e46d","date":"2015-01-02","type":"Hospital","specialist":"MD House","diagnosisCodes":["S62.5"],"description":"Healing time appr. 2 weeks.","discharge":{"date":"2015-01-16","criteria":"Thumb has healed."}},
		{"id":"fcd59fa6","date":"2019-08-05","type":"OccupationalHealthcare","specialist":"MD House","employerName":"HyPD","description":"Prescriptions renewed."}
	]
}`

func TestPatient_UnmarshalFullRecord(t *testing.T) {
	var p Patient
	if err := json.Unmarshal([]byte(fullPatientJSON), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Gender != GenderMale {
		t.Errorf("expected male, got %s", p.Gender)
	}
	if len(p.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Entries))
	}
	if p.Entries[0].Type() != TypeHospital {
		t.Errorf("expected first entry Hospital, got %s", p.Entries[0].Type())
	}
	if p.Entries[1].Type() != TypeOccupationalHealthcare {
		t.Errorf("expected second entry OccupationalHealthcare, got %s", p.Entries[1].Type())
	}
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid patient, got %v", err)
	}
}

func TestPatient_UnmarshalSummary(t *testing.T) {
	var p Patient
	data := `{"id":"p1","name":"Dana Scully","occupation":"Forensic Pathologist","gender":"female"}`
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Entries != nil {
		t.Errorf("expected nil entries for summary record, got %v", p.Entries)
	}
}

func TestPatient_UnmarshalUnknownEntryFails(t *testing.T) {
	var p Patient
	data := `{"id":"p1","name":"x","occupation":"y","gender":"other","entries":[{"id":"e","type":"Telehealth"}]}`
	err := json.Unmarshal([]byte(data), &p)
	var unknown *UnknownEntryTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownEntryTypeError, got %v", err)
	}
}

func TestPatient_MarshalRoundTripKeepsVariants(t *testing.T) {
	var p Patient
	if err := json.Unmarshal([]byte(fullPatientJSON), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Patient
	if err := json.Unmarshal(b, &again); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	h, ok := again.Entries[0].(HospitalEntry)
	if !ok {
		t.Fatalf("expected HospitalEntry, got %T", again.Entries[0])
	}
	if h.Discharge.Date != "2015-01-16" {
		t.Errorf("expected discharge date to survive, got %s", h.Discharge.Date)
	}
}

func TestPatient_Validate(t *testing.T) {
	p := &Patient{Name: "x"}
	if err := p.Validate(); err == nil {
		t.Error("expected error for missing id")
	}

	p = &Patient{ID: "p1", Gender: "robot"}
	if err := p.Validate(); err == nil {
		t.Error("expected error for invalid gender")
	}

	p = &Patient{ID: "p1", Gender: GenderOther, Entries: Entries{HospitalEntry{BaseEntry: BaseEntry{Description: "d", Date: "2020-01-01", Specialist: "s"}}}}
	if err := p.Validate(); err == nil {
		t.Error("expected error for hospital entry without discharge")
	}
}

func TestGender_Valid(t *testing.T) {
	for _, g := range Genders {
		if !g.Valid() {
			t.Errorf("expected %s to be valid", g)
		}
	}
	if Gender("unknown").Valid() {
		t.Error("expected unknown gender to be invalid")
	}
}
