package patient

import (
	"errors"
	"testing"
)

func TestEntryIcon(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{HealthCheckEntry{}, "stethoscope"},
		{HospitalEntry{}, "hospital outline"},
		{OccupationalHealthcareEntry{}, "user doctor"},
	}
	for _, tt := range tests {
		got, err := EntryIcon(tt.entry)
		if err != nil {
			t.Fatalf("EntryIcon(%T): %v", tt.entry, err)
		}
		if got != tt.want {
			t.Errorf("EntryIcon(%T) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestEntryIcon_Nil(t *testing.T) {
	_, err := EntryIcon(nil)
	var unknown *UnknownEntryTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownEntryTypeError, got %v", err)
	}
}

func TestEntryLabel(t *testing.T) {
	got, err := EntryLabel(TypeOccupationalHealthcare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Occupational Healthcare" {
		t.Errorf("unexpected label %q", got)
	}
	if _, err := EntryLabel("Dental"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestGenderIcon(t *testing.T) {
	tests := map[Gender]string{
		"":           "",
		GenderMale:   "mars",
		GenderFemale: "venus",
		GenderOther:  "other gender",
	}
	for g, want := range tests {
		if got := GenderIcon(g); got != want {
			t.Errorf("GenderIcon(%q) = %q, want %q", g, got, want)
		}
	}
}

func TestDiagnosisLookup(t *testing.T) {
	l := NewDiagnosisLookup(map[string]Diagnosis{
		"S62.5": {Code: "S62.5", Name: "Fracture of thumb"},
		"J10.1": {Code: "J10.1", Name: "Influenza with other respiratory manifestations"},
	})

	name, ok := l.Name("S62.5")
	if !ok || name != "Fracture of thumb" {
		t.Errorf("unexpected lookup result %q, %v", name, ok)
	}
	if _, ok := l.Name("Z57.1"); ok {
		t.Error("expected unknown code to be reported as missing")
	}

	sorted := l.Sorted()
	if len(sorted) != 2 || sorted[0].Code != "J10.1" {
		t.Errorf("expected diagnoses sorted by code, got %v", sorted)
	}
}

func TestDiagnosisLookup_NilMap(t *testing.T) {
	l := NewDiagnosisLookup(nil)
	if _, ok := l.Name("S62.5"); ok {
		t.Error("expected miss on empty lookup")
	}
	if len(l.Sorted()) != 0 {
		t.Error("expected no diagnoses")
	}
}
