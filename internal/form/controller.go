package form

import (
	"context"
	"fmt"
	"slices"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
)

// variant is the per-entry-type part of a controller.
type variant interface {
	entryType() patient.EntryType
	set(f Field, value string) bool
	inputErrors(errs Errors)
	dirty() bool
	reset()
	fields() []FieldState
	build(base patient.BaseEntry) patient.Entry
}

type baseValues struct {
	description    string
	date           string
	specialist     string
	diagnosisCodes []string
}

func (b baseValues) isInitial() bool {
	return b.description == "" && b.date == "" && b.specialist == "" && len(b.diagnosisCodes) == 0
}

// controller carries the fields every entry form shares and drives the
// variant through validation, submission and cancellation.
type controller struct {
	v         variant
	diagnoses patient.DiagnosisLookup
	handlers  EntryHandlers
	base      baseValues
	touched   map[Field]bool
	errors    Errors
}

func newController(v variant, diagnoses map[string]patient.Diagnosis, h EntryHandlers) *controller {
	c := &controller{
		v:         v,
		diagnoses: patient.NewDiagnosisLookup(diagnoses),
		handlers:  h,
		touched:   map[Field]bool{},
	}
	c.validate()
	return c
}

func (c *controller) EntryType() patient.EntryType { return c.v.entryType() }

// Set changes one field and returns the validation result.
func (c *controller) Set(f Field, value string) Errors {
	switch f {
	case FieldDescription:
		c.base.description = value
	case FieldDate:
		c.base.date = value
	case FieldSpecialist:
		c.base.specialist = value
	default:
		if !c.v.set(f, value) {
			return c.Errors()
		}
	}
	c.touched[f] = true
	c.validate()
	return c.Errors()
}

// SetDiagnosisCodes replaces the selected diagnosis codes. Blank and
// repeated codes are dropped.
func (c *controller) SetDiagnosisCodes(codes []string) Errors {
	var out []string
	for _, code := range codes {
		if code == "" || slices.Contains(out, code) {
			continue
		}
		out = append(out, code)
	}
	c.base.diagnosisCodes = out
	c.touched[FieldDiagnosisCodes] = true
	c.validate()
	return c.Errors()
}

// Errors returns a copy of the current validation errors.
func (c *controller) Errors() Errors {
	out := make(Errors, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Dirty reports whether any field differs from its initial value.
func (c *controller) Dirty() bool {
	return !c.base.isInitial() || c.v.dirty()
}

// CanSubmit reports whether the submit action is enabled.
func (c *controller) CanSubmit() bool {
	return c.errors.Empty() && c.Dirty()
}

// Value builds the entry the form would submit.
func (c *controller) Value() patient.Entry {
	return c.v.build(patient.BaseEntry{
		Description:    c.base.description,
		Date:           c.base.date,
		Specialist:     c.base.specialist,
		DiagnosisCodes: slices.Clone(c.base.diagnosisCodes),
	})
}

// Submit hands the built entry to the submit handler. It refuses with
// ErrNotSubmittable while the form is invalid or untouched; an error from
// the handler is returned unchanged and the edits are kept.
func (c *controller) Submit(ctx context.Context) error {
	c.validate()
	if !c.errors.Empty() {
		return fmt.Errorf("%w: %d invalid field(s)", ErrNotSubmittable, len(c.errors))
	}
	if !c.Dirty() {
		return fmt.Errorf("%w: no field has been changed", ErrNotSubmittable)
	}
	e := c.Value()
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrNotSubmittable, err)
	}
	if c.handlers.OnSubmit == nil {
		return nil
	}
	return c.handlers.OnSubmit(ctx, e)
}

// Cancel discards all edits and notifies the host.
func (c *controller) Cancel() {
	c.base = baseValues{}
	c.v.reset()
	c.touched = map[Field]bool{}
	c.validate()
	if c.handlers.OnCancel != nil {
		c.handlers.OnCancel()
	}
}

// Fields returns the render state of every field in display order. Errors
// are only attached to fields that have been edited.
func (c *controller) Fields() []FieldState {
	fields := []FieldState{
		{Name: FieldDescription, Label: "Description", Placeholder: "Description", Kind: KindText, Value: c.base.description},
		{Name: FieldDate, Label: "Date", Placeholder: "YYYY-MM-DD", Kind: KindText, Value: c.base.date},
		{Name: FieldSpecialist, Label: "Specialist", Placeholder: "Specialist", Kind: KindText, Value: c.base.specialist},
		{Name: FieldDiagnosisCodes, Label: "Diagnoses", Kind: KindMultiSelect, Selected: slices.Clone(c.base.diagnosisCodes), Options: c.diagnosisOptions()},
	}
	fields = append(fields, c.v.fields()...)
	for i := range fields {
		if c.touched[fields[i].Name] {
			fields[i].Error = c.errors[fields[i].Name]
		}
	}
	return fields
}

func (c *controller) diagnosisOptions() []Option {
	sorted := c.diagnoses.Sorted()
	opts := make([]Option, 0, len(sorted))
	for _, d := range sorted {
		opts = append(opts, Option{Value: d.Code, Label: fmt.Sprintf("%s (%s)", d.Name, d.Code)})
	}
	return opts
}

func (c *controller) validate() {
	errs, err := ValidateEntry(c.Value())
	if err != nil {
		// Unreachable for the variants in this package.
		errs = Errors{}
	}
	c.v.inputErrors(errs)
	c.errors = errs
}
