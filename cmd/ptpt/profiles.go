package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/application/privacy"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/field"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/profile"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// identityFlags name one profile inside a category store.
type identityFlags struct {
	category string
	country  string
	typ      string
	name     string
}

func (f *identityFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.category, "category", string(scenario.CategoryCard), `profile category: "card" or "alternative-payment"`)
	fl.StringVar(&f.country, "country", "", "profile country code")
	fl.StringVar(&f.typ, "type", "", "method type")
	fl.StringVarP(&f.name, "name", "n", "", "profile name")
}

func (f *identityFlags) resolve() (scenario.Category, scenario.MethodType, error) {
	cat := scenario.Category(f.category)
	if !cat.Valid() {
		return "", "", fmt.Errorf("unknown category %q", f.category)
	}
	if f.country == "" || f.typ == "" || f.name == "" {
		return "", "", errors.New("--country, --type and --name are required")
	}
	return cat, scenario.MethodType(f.typ), nil
}

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage saved configuration profiles",
	}

	cmd.AddCommand(
		profilesListCmd(),
		profilesShowCmd(),
		profilesSaveCmd(),
		profilesDeleteCmd(),
	)

	return cmd
}

func profilesListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the profiles of a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cat := scenario.Category(category)
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}

			profiles, err := a.store().Load(cat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range profiles {
				fmt.Fprintf(out, "%-40s %s\n", p.Key(), p.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", string(scenario.CategoryCard), `profile category: "card" or "alternative-payment"`)
	return cmd
}

func profilesShowCmd() *cobra.Command {
	var id identityFlags
	var unmasked bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one profile's fields and saved overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cat, typ, err := id.resolve()
			if err != nil {
				return err
			}

			p, err := a.store().Find(cat, id.country, typ, id.name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", p.Key())
			if p.Description != "" {
				fmt.Fprintf(out, "description: %s\n", p.Description)
			}
			fmt.Fprintf(out, "ptp: %s\n\n", p.PaymentTypeProfile())

			for _, name := range p.Fields.Names() {
				v, _ := p.Fields.Get(name)
				fmt.Fprintf(out, "  %-20s %v\n", name, displayValue(name, v, unmasked))
			}

			scenarios := make([]scenario.Scenario, 0, len(p.Overrides))
			for sc := range p.Overrides {
				scenarios = append(scenarios, sc)
			}
			sort.Slice(scenarios, func(i, j int) bool { return scenarios[i] < scenarios[j] })

			for _, sc := range scenarios {
				frag, _ := p.Override(sc)
				text, err := payload.MarshalDisplay(frag)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\noverride[%s]:\n%s\n", sc, text)
			}
			return nil
		},
	}

	id.register(cmd)
	cmd.Flags().BoolVar(&unmasked, "unmasked", false, "show real values instead of the masked view")
	return cmd
}

// displayValue masks the sensitive fields for terminal output.
func displayValue(name string, v any, unmasked bool) any {
	if unmasked {
		return v
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch name {
	case field.CardNumber:
		return privacy.CardNumber(s)
	case field.CardCVV:
		return privacy.CVV(s)
	}
	return v
}

func profilesSaveCmd() *cobra.Command {
	var id identityFlags
	var description, ptp, overrideFile, overrideScenario string
	var sets []string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update a profile",
		Long: `Save creates the named profile with category defaults when it does
not exist, applies any --set field edits and stores it. An --override
file attaches a custom payload fragment to the given scenario; the
integration key is always stripped before the profile is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cat, typ, err := id.resolve()
			if err != nil {
				return err
			}

			store := a.store()
			p, err := store.Find(cat, id.country, typ, id.name)
			if errors.Is(err, profile.ErrNotFound) {
				p, err = profile.New(id.name, id.country, cat, typ)
			}
			if err != nil {
				return err
			}

			if description != "" {
				p.Description = description
			}
			if ptp != "" {
				p.PTP = ptp
			}

			for _, set := range sets {
				name, value, ok := strings.Cut(set, "=")
				if !ok {
					return fmt.Errorf("--set wants name=value, got %q", set)
				}
				if _, err := p.Fields.Set(name, value); err != nil {
					return err
				}
			}

			if overrideFile != "" {
				sc := scenario.Scenario(overrideScenario)
				if !sc.Valid() {
					return fmt.Errorf("unknown scenario %q", overrideScenario)
				}
				data, err := os.ReadFile(overrideFile)
				if err != nil {
					return fmt.Errorf("read override file: %w", err)
				}
				frag, err := payload.FromJSON(data)
				if err != nil {
					return fmt.Errorf("parse override file: %w", err)
				}
				p.SetOverride(sc, frag)
			}

			if err := store.Save(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", p.Key())
			return nil
		},
	}

	id.register(cmd)
	cmd.Flags().StringVar(&description, "description", "", "profile description")
	cmd.Flags().StringVar(&ptp, "ptp", "", "payment-type-profile slug")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().StringVar(&overrideFile, "override", "", "JSON file with a custom payload fragment")
	cmd.Flags().StringVarP(&overrideScenario, "scenario", "s", string(scenario.Unauthenticated), "scenario the override applies to")
	return cmd
}

func profilesDeleteCmd() *cobra.Command {
	var id identityFlags

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cat, typ, err := id.resolve()
			if err != nil {
				return err
			}

			if err := a.store().Delete(cat, id.country, typ, id.name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%s/%s\n", id.country, id.typ, id.name)
			return nil
		},
	}

	id.register(cmd)
	return cmd
}
