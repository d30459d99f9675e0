package form

import (
	"context"
	"errors"
	"testing"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

var testDiagnoses = map[string]patient.Diagnosis{
	"S62.5": {Code: "S62.5", Name: "Fracture of thumb"},
	"J10.1": {Code: "J10.1", Name: "Influenza with other respiratory manifestations"},
}

func fillBase(f EntryForm) {
	f.Set(FieldDescription, "Yearly control visit.")
	f.Set(FieldDate, "2019-10-20")
	f.Set(FieldSpecialist, "MD House")
}

func TestHealthCheckForm_Initial(t *testing.T) {
	f := NewHealthCheckForm(testDiagnoses, EntryHandlers{})

	if f.Dirty() {
		t.Error("expected new form to be clean")
	}
	if f.CanSubmit() {
		t.Error("expected new form not to be submittable")
	}
	e := f.Entry()
	if e.Description != "" || e.HealthCheckRating != patient.RatingHealthy || len(e.DiagnosisCodes) != 0 {
		t.Errorf("unexpected initial value: %+v", e)
	}
	errs := f.Errors()
	for _, field := range []Field{FieldDescription, FieldDate, FieldSpecialist, FieldHealthCheckRating} {
		if errs[field] != MsgRequired {
			t.Errorf("expected %s to be required, got %q", field, errs[field])
		}
	}
}

func TestHealthCheckForm_ZeroRatingBlocksSubmit(t *testing.T) {
	f := NewHealthCheckForm(testDiagnoses, EntryHandlers{})
	fillBase(f)
	errs := f.Set(FieldHealthCheckRating, "0")

	if errs[FieldHealthCheckRating] != MsgRequired {
		t.Errorf("expected rating 0 to be reported as required, got %q", errs[FieldHealthCheckRating])
	}
	if f.CanSubmit() {
		t.Error("expected submit to be disabled with rating 0")
	}
	err := f.Submit(context.Background())
	if !errors.Is(err, ErrNotSubmittable) {
		t.Errorf("expected ErrNotSubmittable, got %v", err)
	}
}

func TestHealthCheckForm_BlankRatingIsRequired(t *testing.T) {
	for _, blank := range []string{"", "  "} {
		f := NewHealthCheckForm(testDiagnoses, EntryHandlers{})
		fillBase(f)
		f.Set(FieldHealthCheckRating, "abc")
		errs := f.Set(FieldHealthCheckRating, blank)

		if errs[FieldHealthCheckRating] != MsgRequired {
			t.Errorf("expected blank rating %q to be required, got %q", blank, errs[FieldHealthCheckRating])
		}
		if f.CanSubmit() {
			t.Errorf("expected submit to be disabled with blank rating %q", blank)
		}
	}
}

func TestHealthCheckForm_RequiresEveryTextField(t *testing.T) {
	for _, missing := range []Field{FieldDescription, FieldDate, FieldSpecialist} {
		t.Run(string(missing), func(t *testing.T) {
			f := NewHealthCheckForm(testDiagnoses, EntryHandlers{})
			fillBase(f)
			f.Set(FieldHealthCheckRating, "2")
			errs := f.Set(missing, "")

			if errs[missing] != MsgRequired {
				t.Errorf("expected %s to be required, got %q", missing, errs[missing])
			}
			if f.CanSubmit() {
				t.Errorf("expected submit to be disabled without %s", missing)
			}
		})
	}
}

func TestHealthCheckForm_InvalidRating(t *testing.T) {
	f := NewHealthCheckForm(testDiagnoses, EntryHandlers{})
	fillBase(f)

	if errs := f.Set(FieldHealthCheckRating, "abc"); errs[FieldHealthCheckRating] != msgRatingRange {
		t.Errorf("expected range error for non-numeric rating, got %q", errs[FieldHealthCheckRating])
	}
	if errs := f.Set(FieldHealthCheckRating, "4"); errs[FieldHealthCheckRating] != msgRatingRange {
		t.Errorf("expected range error for rating 4, got %q", errs[FieldHealthCheckRating])
	}
	if errs := f.Set(FieldHealthCheckRating, "3"); errs.Has(FieldHealthCheckRating) {
		t.Errorf("expected rating 3 to be valid, got %q", errs[FieldHealthCheckRating])
	}
}

func TestHealthCheckForm_Submit(t *testing.T) {
	var got patient.Entry
	f := NewHealthCheckForm(testDiagnoses, EntryHandlers{
		OnSubmit: func(_ context.Context, e patient.Entry) error {
			got = e
			return nil
		},
	})
	fillBase(f)
	f.Set(FieldHealthCheckRating, "1")
	f.SetDiagnosisCodes([]string{"S62.5", "", "S62.5", "Z57.1"})

	if !f.CanSubmit() {
		t.Fatalf("expected form to be submittable, errors: %v", f.Errors())
	}
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hc, ok := got.(patient.HealthCheckEntry)
	if !ok {
		t.Fatalf("expected HealthCheckEntry, got %T", got)
	}
	if hc.ID != "" {
		t.Errorf("expected submitted entry without id, got %s", hc.ID)
	}
	if hc.Type() != patient.TypeHealthCheck {
		t.Errorf("expected HealthCheck tag, got %s", hc.Type())
	}
	if hc.HealthCheckRating != patient.RatingLowRisk {
		t.Errorf("expected rating 1, got %d", hc.HealthCheckRating)
	}
	if len(hc.DiagnosisCodes) != 2 || hc.DiagnosisCodes[0] != "S62.5" || hc.DiagnosisCodes[1] != "Z57.1" {
		t.Errorf("unexpected diagnosis codes: %v", hc.DiagnosisCodes)
	}
}

func TestHealthCheckForm_SubmitErrorKeepsEdits(t *testing.T) {
	rejection := errors.New("Malformatted date")
	f := NewHealthCheckForm(testDiagnoses, EntryHandlers{
		OnSubmit: func(context.Context, patient.Entry) error { return rejection },
	})
	fillBase(f)
	f.Set(FieldHealthCheckRating, "2")

	if err := f.Submit(context.Background()); !errors.Is(err, rejection) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if f.Entry().Description != "Yearly control visit." {
		t.Error("expected edits to survive a rejected submission")
	}
}

func TestHealthCheckForm_Cancel(t *testing.T) {
	cancelled := false
	submitted := false
	f := NewHealthCheckForm(testDiagnoses, EntryHandlers{
		OnSubmit: func(context.Context, patient.Entry) error { submitted = true; return nil },
		OnCancel: func() { cancelled = true },
	})
	fillBase(f)
	f.Set(FieldHealthCheckRating, "3")

	f.Cancel()

	if !cancelled {
		t.Error("expected OnCancel to be called")
	}
	if submitted {
		t.Error("expected cancel not to submit")
	}
	if f.Dirty() {
		t.Error("expected cancel to discard edits")
	}
	for _, fs := range f.Fields() {
		if fs.Error != "" {
			t.Errorf("expected no visible errors after cancel, %s has %q", fs.Name, fs.Error)
		}
	}
}

func TestHealthCheckForm_FieldsShowErrorsOnlyWhenTouched(t *testing.T) {
	f := NewHealthCheckForm(testDiagnoses, EntryHandlers{})
	f.Set(FieldDescription, "")

	var sawDescription, sawDiagnoses bool
	for _, fs := range f.Fields() {
		switch fs.Name {
		case FieldDescription:
			sawDescription = true
			if fs.Error != MsgRequired {
				t.Errorf("expected touched description to show error, got %q", fs.Error)
			}
		case FieldDate:
			if fs.Error != "" {
				t.Errorf("expected untouched date to hide error, got %q", fs.Error)
			}
		case FieldDiagnosisCodes:
			sawDiagnoses = true
			if len(fs.Options) != 2 || fs.Options[0].Value != "J10.1" {
				t.Errorf("expected diagnosis options sorted by code, got %v", fs.Options)
			}
		}
	}
	if !sawDescription || !sawDiagnoses {
		t.Error("expected description and diagnosis fields")
	}
}
