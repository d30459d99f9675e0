package patient

import (
	"encoding/json"
	"fmt"
)

// Gender is the administrative gender recorded by the patientor service.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists every valid gender in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Diagnosis is identified by its code and never changes once loaded.
type Diagnosis struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Latin string `json:"latin,omitempty"`
}

// Patient is either a summary record (list endpoint, no entries) or a full
// record (detail endpoint) carrying the complete medical history.
type Patient struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Occupation  string  `json:"occupation"`
	Gender      Gender  `json:"gender"`
	SSN         string  `json:"ssn,omitempty"`
	DateOfBirth string  `json:"dateOfBirth,omitempty"`
	Entries     Entries `json:"entries"`
}

// Validate checks the fields a persisted patient must carry.
func (p *Patient) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("patient id is required")
	}
	if p.Gender != "" && !p.Gender.Valid() {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	for i, e := range p.Entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// NewPatient is the body of a patient creation request. The service assigns
// the id and starts the record with no entries.
type NewPatient struct {
	Name        string `json:"name"`
	SSN         string `json:"ssn"`
	DateOfBirth string `json:"dateOfBirth"`
	Occupation  string `json:"occupation"`
	Gender      Gender `json:"gender"`
}

// Entries is an ordered medical history. It decodes each element according
// to its "type" discriminator.
type Entries []Entry

func (es *Entries) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*es = nil
		return nil
	}
	out := make(Entries, 0, len(raw))
	for i, r := range raw {
		e, err := DecodeEntry(r)
		if err != nil {
			return fmt.Errorf("entries[%d]: %w", i, err)
		}
		out = append(out, e)
	}
	*es = out
	return nil
}
