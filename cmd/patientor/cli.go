package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/domain/patient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/form"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/platform/apiclient"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/state"
	"github.com/EthanLatimerGB/Exercise-PatientorFEModified/internal/viewer"
)

// session is a one-shot store and loader for a CLI command.
type session struct {
	client *apiclient.Client
	store  *state.Store
	loader *viewer.Loader
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())
	client, err := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	store := state.NewStore(state.WithLogger(logger))
	return &session{
		client: client,
		store:  store,
		loader: viewer.NewLoader(client, store, logger),
	}, nil
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the patient service answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.client.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pong from %s\n", s.client.BaseURL())
			return nil
		},
	}
}

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List, show and add patients",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.loader.RefreshPatients(cmd.Context()); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tGENDER\tOCCUPATION")
			for _, p := range viewer.SortedPatients(s.store.State().Patients) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Gender, p.Occupation)
			}
			return w.Flush()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a patient with its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			// Diagnosis names are optional; codes print bare without them.
			_ = s.loader.RefreshDiagnoses(cmd.Context())
			p, err := s.loader.LoadPatient(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view, err := viewer.NewPatientView(p, s.store.State().Diagnoses())
			if err != nil {
				return err
			}
			printPatient(cmd.OutOrStdout(), view)
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			var created patient.Patient
			f := form.NewPatientForm(form.PatientHandlers{
				OnSubmit: func(ctx context.Context, np patient.NewPatient) error {
					p, err := s.loader.AddPatient(ctx, np)
					created = p
					return err
				},
			})
			for _, fs := range f.Fields() {
				v, _ := cmd.Flags().GetString(patientFlags[fs.Name])
				f.Set(fs.Name, v)
			}
			if err := f.Submit(cmd.Context()); err != nil {
				return submitError(cmd.ErrOrStderr(), f.Fields(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added patient %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Full name")
	addCmd.Flags().String("ssn", "", "Social security number")
	addCmd.Flags().String("date-of-birth", "", "Date of birth (YYYY-MM-DD)")
	addCmd.Flags().String("occupation", "", "Occupation")
	addCmd.Flags().String("gender", string(patient.GenderOther), "male, female or other")

	cmd.AddCommand(listCmd, showCmd, addCmd)
	return cmd
}

var patientFlags = map[form.Field]string{
	form.FieldName:        "name",
	form.FieldSSN:         "ssn",
	form.FieldDateOfBirth: "date-of-birth",
	form.FieldOccupation:  "occupation",
	form.FieldGender:      "gender",
}

var entryFlags = map[form.Field]string{
	form.FieldDescription:       "description",
	form.FieldDate:              "date",
	form.FieldSpecialist:        "specialist",
	form.FieldDiagnosisCodes:    "diagnosis-codes",
	form.FieldHealthCheckRating: "rating",
	form.FieldDischargeDate:     "discharge-date",
	form.FieldDischargeCriteria: "discharge-criteria",
	form.FieldEmployerName:      "employer",
	form.FieldSickLeaveStart:    "sick-leave-start",
	form.FieldSickLeaveEnd:      "sick-leave-end",
}

func entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Manage patient entries",
	}

	addCmd := &cobra.Command{
		Use:   "add <patient-id>",
		Short: "Add an entry to a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			typ, _ := cmd.Flags().GetString("type")
			sel := form.NewSelector(false)
			if err := sel.Restore(typ); err != nil {
				return err
			}
			if _, ok := sel.Current(); !ok {
				return fmt.Errorf("--type is required: one of %s", strings.Join(entryTypeNames(), ", "))
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			_ = s.loader.RefreshDiagnoses(cmd.Context())

			f, err := sel.Form(s.store.State().DiagnosisList, form.EntryHandlers{
				OnSubmit: func(ctx context.Context, e patient.Entry) error {
					return s.loader.SubmitEntry(ctx, id, e)
				},
			})
			if err != nil {
				return err
			}
			for _, fs := range f.Fields() {
				name := entryFlags[fs.Name]
				if fs.Kind == form.KindMultiSelect {
					codes, _ := cmd.Flags().GetStringSlice(name)
					f.SetDiagnosisCodes(codes)
					continue
				}
				v, _ := cmd.Flags().GetString(name)
				f.Set(fs.Name, v)
			}
			if err := f.Submit(cmd.Context()); err != nil {
				return submitError(cmd.ErrOrStderr(), f.Fields(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s entry to %s\n", f.EntryType(), id)
			if cur := s.store.State().CurrentPatient; cur != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d entries on record\n", len(cur.Entries))
			}
			return nil
		},
	}
	addCmd.Flags().String("type", "", "Entry type: "+strings.Join(entryTypeNames(), ", "))
	addCmd.Flags().String("description", "", "Description")
	addCmd.Flags().String("date", "", "Date (YYYY-MM-DD)")
	addCmd.Flags().String("specialist", "", "Specialist")
	addCmd.Flags().StringSlice("diagnosis-codes", nil, "Diagnosis codes, comma separated")
	addCmd.Flags().String("rating", "", "Health check rating 0-3 (HealthCheck)")
	addCmd.Flags().String("discharge-date", "", "Discharge date (Hospital)")
	addCmd.Flags().String("discharge-criteria", "", "Discharge criteria (Hospital)")
	addCmd.Flags().String("employer", "", "Employer name (OccupationalHealthcare)")
	addCmd.Flags().String("sick-leave-start", "", "Sick leave start date (OccupationalHealthcare)")
	addCmd.Flags().String("sick-leave-end", "", "Sick leave end date (OccupationalHealthcare)")

	cmd.AddCommand(addCmd)
	return cmd
}

func entryTypeNames() []string {
	names := make([]string, 0, len(patient.EntryTypes))
	for _, t := range patient.EntryTypes {
		names = append(names, string(t))
	}
	return names
}

// submitError prints field errors for a rejected form and returns the error
// to report. Service rejections come back with their message.
func submitError(w io.Writer, fields []form.FieldState, err error) error {
	if errors.Is(err, form.ErrNotSubmittable) {
		for _, fs := range fields {
			if fs.Error != "" {
				fmt.Fprintf(w, "  %s: %s\n", fs.Name, fs.Error)
			}
		}
		return err
	}
	if msg := viewer.RejectionMessage(err); msg != "" {
		return fmt.Errorf("rejected by the patient service: %s", msg)
	}
	return err
}

func printPatient(w io.Writer, p *viewer.PatientView) {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "ssn: %s\n", p.SSN)
	fmt.Fprintf(w, "occupation: %s\n", p.Occupation)
	fmt.Fprintf(w, "date of birth: %s\n", p.DateOfBirth)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "entries")
	if len(p.Entries) == 0 {
		fmt.Fprintln(w, "  No entries")
		return
	}
	for _, e := range p.Entries {
		fmt.Fprintf(w, "  %s [%s] %s\n", e.Date, e.Label, e.Description)
		fmt.Fprintf(w, "    Specialist: %s\n", e.Specialist)
		for _, d := range e.Details {
			fmt.Fprintf(w, "    %s: %s\n", d.Label, d.Value)
		}
		for _, d := range e.Diagnoses {
			fmt.Fprintf(w, "    - %s\n", strings.TrimSpace(d.Code+" "+d.Name))
		}
	}
}
