package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List the order-form fields",
	Long: `Lists every field the wizard collects, grouped by step, with the labels
recognised in documents. Field names are the keys used in answers files.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	if schema == nil {
		return errors.New("schema not configured")
	}

	for _, step := range domain.AllSteps() {
		cmd.Printf("[%s]\n", step.Title())
		for _, def := range schema.FieldsForStep(step) {
			cmd.Printf("  %-26s %s (%s)%s\n", def.Name, def.Label, def.Type, requirement(def))
			if len(def.Aliases) > 0 {
				cmd.Printf("  %-26s also: %s\n", "", strings.Join(def.Aliases, ", "))
			}
			if len(def.Options) > 0 {
				cmd.Printf("  %-26s one of: %s\n", "", strings.Join(def.Options, " | "))
			}
			if def.Default != nil {
				cmd.Printf("  %-26s default: %s\n", "", def.Default.Display())
			}
		}
		cmd.Println()
	}
	return nil
}

func requirement(def domain.FieldDefinition) string {
	switch {
	case def.Required:
		return ", required"
	case def.RequiredWhen == nil:
		return ""
	case len(def.RequiredWhen.In) > 0:
		return fmt.Sprintf(", required when %s is %s", def.RequiredWhen.Field, strings.Join(def.RequiredWhen.In, " or "))
	default:
		return fmt.Sprintf(", required unless %s is %s", def.RequiredWhen.Field, strings.Join(def.RequiredWhen.NotIn, " or "))
	}
}
