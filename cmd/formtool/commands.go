package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"github.com/lychee-technology/formdesk/factory"
	"github.com/lychee-technology/formdesk/internal"
	"github.com/spf13/cobra"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

func formsCmd(cfg *formdesk.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List saved forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := factory.NewDesk(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defs, err := desk.Definitions.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list forms: %w", err)
			}
			return printForms(cmd.OutOrStdout(), desk, defs)
		},
	}
}

func printForms(w io.Writer, desk *factory.Desk, defs []formdesk.FormDefinition) error {
	if len(defs) == 0 {
		fmt.Fprintln(w, "No forms found")
		return nil
	}

	fmt.Fprintf(w, "%-28s %-6s %s\n", "REF", "FIELDS", "NAME")
	for _, def := range defs {
		fmt.Fprintf(w, "%-28s %-6d %s\n", desk.FormRef(def.ID), len(def.Fields), def.Name)
		if dups := def.DuplicateFieldNames(); len(dups) > 0 {
			fmt.Fprintf(w, "  %s duplicate field names: %s\n", warnColor.Sprint("!"), strings.Join(dups, ", "))
		}
	}
	return nil
}

func schemaCmd(cfg *formdesk.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <form>",
		Short: "Print the JSON Schema of a saved form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := factory.NewDesk(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			def, err := desk.ResolveForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			schema, err := internal.ToJSONSchema(def)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), schema)
		},
	}
}

type printingNavigator struct {
	w io.Writer
}

func (n printingNavigator) RedirectToFormSelection(_ context.Context, missing uuid.UUID) {
	fmt.Fprintf(n.w, "%s form %s not found; run \"formtool forms\" to pick one\n", errColor.Sprint("✗"), missing)
}

func fillCmd(cfg *formdesk.Config) *cobra.Command {
	var (
		assignments []string
		summarize   bool
	)

	cmd := &cobra.Command{
		Use:   "fill <form>",
		Short: "Fill a saved form and print the resulting submission",
		Long: `Fill instantiates a record for the form, applies each --set name=value, validates
required fields and prints the pending submission as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			values, err := parseAssignments(assignments)
			if err != nil {
				return err
			}
			desk, err := factory.NewDesk(ctx, cfg, factory.WithNavigator(printingNavigator{w: cmd.ErrOrStderr()}))
			if err != nil {
				return err
			}
			id, err := internal.ResolveFormRef(args[0])
			if err != nil {
				return err
			}

			session, err := desk.OpenFillSession(ctx, id)
			if err != nil {
				return err
			}
			if session.State() == formdesk.FillStateRedirected {
				return fmt.Errorf("form %s not found", args[0])
			}

			for _, kv := range values {
				if err := session.SetInput(kv.name, kv.value); err != nil {
					return fmt.Errorf("--set %s: %w", kv.name, err)
				}
			}

			def, _ := session.Definition()
			if err := internal.CheckConformance(def, session.Record()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", warnColor.Sprint("!"), err)
			}

			sub, err := session.Submit(ctx)
			if err != nil {
				if fieldErrs, ok := formdesk.ValidationErrorsOf(err); ok {
					printFieldErrors(cmd.ErrOrStderr(), def, fieldErrs)
				}
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s submitted %s (%s)\n", okColor.Sprint("✓"), sub.ID, sub.Status)
			if err := writeJSON(out, sub); err != nil {
				return err
			}
			if summarize {
				text, err := desk.Summaries.Summarize(ctx, sub.ID)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&assignments, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().BoolVar(&summarize, "summary", false, "print a summary of the submission")
	return cmd
}

// printFieldErrors lists errors in form field order.
func printFieldErrors(w io.Writer, def formdesk.FormDefinition, errs formdesk.FieldValidationErrors) {
	printed := make(map[string]bool, len(errs))
	for _, f := range def.Fields {
		if msg, ok := errs[f.Name]; ok && !printed[f.Name] {
			fmt.Fprintf(w, "%s %s: %s\n", errColor.Sprint("✗"), f.Name, msg)
			printed[f.Name] = true
		}
	}
}

func newFormCmd(cfg *formdesk.Config) *cobra.Command {
	var (
		name        string
		description string
		fieldSpecs  []string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a form definition document",
		Long: `New assembles a form from --field specs of the form type:Label[:required][:opt1|opt2]
and writes the definition document as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := make([]fieldSpec, 0, len(fieldSpecs))
			for _, raw := range fieldSpecs {
				spec, err := parseFieldSpec(raw)
				if err != nil {
					return err
				}
				specs = append(specs, spec)
			}

			desk, err := factory.NewDesk(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			def, err := buildDefinition(desk.NewBuilder(), name, description, specs)
			if err != nil {
				return err
			}

			if outPath == "" {
				return writeJSON(cmd.OutOrStdout(), def)
			}
			if err := writeJSONFile(outPath, def); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s wrote %s (%s)\n", okColor.Sprint("✓"), outPath, desk.FormRef(def.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "form name")
	cmd.Flags().StringVar(&description, "description", "", "form description")
	cmd.Flags().StringArrayVar(&fieldSpecs, "field", nil, "field spec type:Label[:required][:opt1|opt2] (repeatable)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the document to this file instead of stdout")
	return cmd
}

type fieldSpec struct {
	fieldType formdesk.FieldType
	label     string
	required  bool
	options   []string
}

func parseFieldSpec(raw string) (fieldSpec, error) {
	parts := strings.SplitN(raw, ":", 4)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return fieldSpec{}, fmt.Errorf("field spec %q: want type:Label", raw)
	}
	spec := fieldSpec{
		fieldType: formdesk.FieldType(strings.ToLower(strings.TrimSpace(parts[0]))),
		label:     strings.TrimSpace(parts[1]),
	}
	if !spec.fieldType.Valid() {
		return fieldSpec{}, formdesk.NewUnknownFieldTypeError(spec.fieldType)
	}
	if len(parts) > 2 {
		switch strings.TrimSpace(parts[2]) {
		case "required":
			spec.required = true
		case "", "optional":
		default:
			return fieldSpec{}, fmt.Errorf("field spec %q: third part must be \"required\" or empty", raw)
		}
	}
	if len(parts) > 3 {
		spec.options = internal.CleanOptions(strings.Split(parts[3], "|"))
	}
	return spec, nil
}

func buildDefinition(b formdesk.FormBuilder, name, description string, specs []fieldSpec) (formdesk.FormDefinition, error) {
	meta := formdesk.FormMetaPatch{}
	if name != "" {
		meta.Name = &name
	}
	if description != "" {
		meta.Description = &description
	}
	b.UpdateFormMeta(meta)

	for _, spec := range specs {
		field, err := b.AddField(spec.fieldType)
		if err != nil {
			return formdesk.FormDefinition{}, err
		}
		patch := formdesk.FieldPatch{Label: &spec.label, Required: &spec.required}
		if spec.options != nil {
			patch.Options = &spec.options
		}
		b.UpdateField(field.ID, patch)
	}
	b.ClearSelection()
	return b.Definition(), nil
}

type assignment struct {
	name  string
	value string
}

// parseAssignments keeps flag order so later --set values win.
func parseAssignments(raw []string) ([]assignment, error) {
	out := make([]assignment, 0, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--set %q: want name=value", kv)
		}
		out = append(out, assignment{name: name, value: value})
	}
	return out, nil
}

// writeJSONFile reports a failed close, since that is where a short write surfaces.
func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeJSON(f, v); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
