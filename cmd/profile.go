package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/avomont/lifeline/internal/domain"
)

type profileDocument struct {
	ID          string            `yaml:"id"`
	FullName    string            `yaml:"full_name"`
	DateOfBirth string            `yaml:"date_of_birth"`
	BloodType   string            `yaml:"blood_type"`
	Conditions  []string          `yaml:"conditions"`
	Medications []string          `yaml:"medications"`
	Allergies   []string          `yaml:"allergies"`
	Notes       string            `yaml:"notes"`
	Contacts    []contactDocument `yaml:"contacts"`
}

type contactDocument struct {
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Relation string `yaml:"relation"`
	Primary  bool   `yaml:"primary"`
}

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the medical profile",
	}

	cmd.AddCommand(newProfileImportCmd(app), newProfileShowCmd(app))

	return cmd
}

func newProfileImportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import the medical profile from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read profile file: %w", err)
			}

			var doc profileDocument
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parse profile file: %w", err)
			}

			profile, err := app.profiles.Save(cmd.Context(), profileFromDocument(doc))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Profile for %s saved (%d contacts).\n", profile.FullName, len(profile.Contacts))
			return nil
		},
	}
}

func newProfileShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored medical profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.profiles.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Name: "+profile.FullName)
			if profile.DateOfBirth != "" {
				fmt.Fprintln(out, "Date of birth: "+profile.DateOfBirth)
			}
			if profile.BloodType != "" {
				fmt.Fprintln(out, "Blood type: "+profile.BloodType)
			}
			if len(profile.Conditions) > 0 {
				fmt.Fprintln(out, "Conditions: "+strings.Join(profile.Conditions, ", "))
			}
			if len(profile.Medications) > 0 {
				fmt.Fprintln(out, "Medications: "+strings.Join(profile.Medications, ", "))
			}
			if len(profile.Allergies) > 0 {
				fmt.Fprintln(out, "Allergies: "+strings.Join(profile.Allergies, ", "))
			}
			if profile.Notes != "" {
				fmt.Fprintln(out, "Notes: "+profile.Notes)
			}

			for _, contact := range profile.Contacts {
				role := "secondary"
				if contact.IsPrimary {
					role = "primary"
				}
				line := fmt.Sprintf("Contact: %s (%s, %s)", contact.Name, contact.Phone, role)
				if contact.Relation != "" {
					line += " " + contact.Relation
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func profileFromDocument(doc profileDocument) domain.MedicalProfile {
	contacts := make([]domain.EmergencyContact, 0, len(doc.Contacts))
	for _, contact := range doc.Contacts {
		contacts = append(contacts, domain.EmergencyContact{
			Name:      contact.Name,
			Phone:     contact.Phone,
			Relation:  contact.Relation,
			IsPrimary: contact.Primary,
		})
	}

	return domain.MedicalProfile{
		ID:          doc.ID,
		FullName:    doc.FullName,
		DateOfBirth: doc.DateOfBirth,
		BloodType:   doc.BloodType,
		Conditions:  doc.Conditions,
		Medications: doc.Medications,
		Allergies:   doc.Allergies,
		Notes:       doc.Notes,
		Contacts:    contacts,
	}
}
