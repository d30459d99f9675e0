package patient

import (
	"encoding/json"
	"fmt"
)

// EntryType is the discriminator carried in the "type" field of every entry.
type EntryType string

const (
	TypeHealthCheck            EntryType = "HealthCheck"
	TypeHospital               EntryType = "Hospital"
	TypeOccupationalHealthcare EntryType = "OccupationalHealthcare"
)

// EntryTypes lists the closed set of entry variants in display order.
var EntryTypes = []EntryType{TypeHealthCheck, TypeHospital, TypeOccupationalHealthcare}

// ParseEntryType maps a discriminator string onto a known variant.
func ParseEntryType(s string) (EntryType, error) {
	switch t := EntryType(s); t {
	case TypeHealthCheck, TypeHospital, TypeOccupationalHealthcare:
		return t, nil
	default:
		return "", &UnknownEntryTypeError{Type: s}
	}
}

// UnknownEntryTypeError is returned wherever an entry tag outside the known
// variants is encountered.
type UnknownEntryTypeError struct {
	Type string
}

func (e *UnknownEntryTypeError) Error() string {
	return fmt.Sprintf("unknown entry type %q", e.Type)
}

// HealthCheckRating grades the outcome of a health check, 0 being healthy.
type HealthCheckRating int

const (
	RatingHealthy HealthCheckRating = iota
	RatingLowRisk
	RatingHighRisk
	RatingCriticalRisk
)

func (r HealthCheckRating) Valid() bool {
	return r >= RatingHealthy && r <= RatingCriticalRisk
}

func (r HealthCheckRating) String() string {
	switch r {
	case RatingHealthy:
		return "Healthy"
	case RatingLowRisk:
		return "Low risk"
	case RatingHighRisk:
		return "High risk"
	case RatingCriticalRisk:
		return "Critical risk"
	default:
		return fmt.Sprintf("HealthCheckRating(%d)", int(r))
	}
}

// BaseEntry holds the fields shared by every variant. ID is empty on an
// entry that has not been persisted yet; the service assigns it.
type BaseEntry struct {
	ID             string   `json:"id,omitempty"`
	Description    string   `json:"description"`
	Date           string   `json:"date"`
	Specialist     string   `json:"specialist"`
	DiagnosisCodes []string `json:"diagnosisCodes,omitempty"`
}

func (b BaseEntry) validate() error {
	if b.Description == "" {
		return fmt.Errorf("description is required")
	}
	if b.Date == "" {
		return fmt.Errorf("date is required")
	}
	if b.Specialist == "" {
		return fmt.Errorf("specialist is required")
	}
	return nil
}

// Entry is one clinical record attached to a patient. The implementations
// in this package are the only variants.
type Entry interface {
	Type() EntryType
	Base() BaseEntry
	Validate() error
	isEntry()
}

type HealthCheckEntry struct {
	BaseEntry
	HealthCheckRating HealthCheckRating `json:"healthCheckRating"`
}

func (e HealthCheckEntry) Type() EntryType { return TypeHealthCheck }
func (e HealthCheckEntry) Base() BaseEntry { return e.BaseEntry }
func (HealthCheckEntry) isEntry()          {}

func (e HealthCheckEntry) Validate() error {
	if err := e.BaseEntry.validate(); err != nil {
		return err
	}
	if !e.HealthCheckRating.Valid() {
		return fmt.Errorf("healthCheckRating must be between 0 and 3, got %d", int(e.HealthCheckRating))
	}
	return nil
}

func (e HealthCheckEntry) MarshalJSON() ([]byte, error) {
	type alias HealthCheckEntry
	return json.Marshal(struct {
		Type EntryType `json:"type"`
		alias
	}{TypeHealthCheck, alias(e)})
}

// Discharge closes a hospital stay. Date and criteria are set together.
type Discharge struct {
	Date     string `json:"date"`
	Criteria string `json:"criteria"`
}

type HospitalEntry struct {
	BaseEntry
	Discharge Discharge `json:"discharge"`
}

func (e HospitalEntry) Type() EntryType { return TypeHospital }
func (e HospitalEntry) Base() BaseEntry { return e.BaseEntry }
func (HospitalEntry) isEntry()          {}

func (e HospitalEntry) Validate() error {
	if err := e.BaseEntry.validate(); err != nil {
		return err
	}
	if e.Discharge.Date == "" || e.Discharge.Criteria == "" {
		return fmt.Errorf("discharge date and criteria are required")
	}
	return nil
}

func (e HospitalEntry) MarshalJSON() ([]byte, error) {
	type alias HospitalEntry
	return json.Marshal(struct {
		Type EntryType `json:"type"`
		alias
	}{TypeHospital, alias(e)})
}

type SickLeave struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type OccupationalHealthcareEntry struct {
	BaseEntry
	EmployerName string     `json:"employerName"`
	SickLeave    *SickLeave `json:"sickLeave,omitempty"`
}

func (e OccupationalHealthcareEntry) Type() EntryType { return TypeOccupationalHealthcare }
func (e OccupationalHealthcareEntry) Base() BaseEntry { return e.BaseEntry }
func (OccupationalHealthcareEntry) isEntry()          {}

func (e OccupationalHealthcareEntry) Validate() error {
	if err := e.BaseEntry.validate(); err != nil {
		return err
	}
	if e.EmployerName == "" {
		return fmt.Errorf("employerName is required")
	}
	return nil
}

func (e OccupationalHealthcareEntry) MarshalJSON() ([]byte, error) {
	type alias OccupationalHealthcareEntry
	return json.Marshal(struct {
		Type EntryType `json:"type"`
		alias
	}{TypeOccupationalHealthcare, alias(e)})
}

// DecodeEntry decodes one entry, choosing the variant from its "type" field.
func DecodeEntry(data []byte) (Entry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	t, err := ParseEntryType(probe.Type)
	if err != nil {
		return nil, err
	}

	switch t {
	case TypeHealthCheck:
		var e HealthCheckEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s entry: %w", t, err)
		}
		return e, nil
	case TypeHospital:
		var e HospitalEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s entry: %w", t, err)
		}
		return e, nil
	case TypeOccupationalHealthcare:
		var e OccupationalHealthcareEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode %s entry: %w", t, err)
		}
		return e, nil
	default:
		return nil, &UnknownEntryTypeError{Type: probe.Type}
	}
}
