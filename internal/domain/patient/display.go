package patient

import (
	"sort"
)

// EntryIcon returns the icon name shown next to an entry in the history.
func EntryIcon(e Entry) (string, error) {
	switch e.(type) {
	case HealthCheckEntry:
		return "stethoscope", nil
	case HospitalEntry:
		return "hospital outline", nil
	case OccupationalHealthcareEntry:
		return "user doctor", nil
	default:
		return "", &UnknownEntryTypeError{Type: typeName(e)}
	}
}

// EntryLabel is the human readable name of a variant.
func EntryLabel(t EntryType) (string, error) {
	switch t {
	case TypeHealthCheck:
		return "Health Check", nil
	case TypeHospital:
		return "Hospital", nil
	case TypeOccupationalHealthcare:
		return "Occupational Healthcare", nil
	default:
		return "", &UnknownEntryTypeError{Type: string(t)}
	}
}

// GenderIcon returns the icon for a gender. An empty gender has no icon.
func GenderIcon(g Gender) string {
	switch g {
	case "":
		return ""
	case GenderMale:
		return "mars"
	case GenderFemale:
		return "venus"
	default:
		return "other gender"
	}
}

func typeName(e Entry) string {
	if e == nil {
		return "<nil>"
	}
	return string(e.Type())
}

// DiagnosisLookup resolves diagnosis codes against a loaded diagnosis map.
// Codes may reference diagnoses that have not been loaded yet.
type DiagnosisLookup struct {
	byCode map[string]Diagnosis
}

func NewDiagnosisLookup(byCode map[string]Diagnosis) DiagnosisLookup {
	return DiagnosisLookup{byCode: byCode}
}

// Name returns the diagnosis name for code and whether it is known.
func (l DiagnosisLookup) Name(code string) (string, bool) {
	d, ok := l.byCode[code]
	if !ok {
		return "", false
	}
	return d.Name, true
}

// Sorted returns the known diagnoses ordered by code.
func (l DiagnosisLookup) Sorted() []Diagnosis {
	out := make([]Diagnosis, 0, len(l.byCode))
	for _, d := range l.byCode {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
