package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/services"
	"github.com/custodia-labs/orderform-cli/internal/postprocessors"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the seller name, output defaults and the text
clean-up applied to imported documents.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting by key.

Keys:
  branding.company_name   seller name printed on forms and file names
  output.directory        where generated forms are saved
  output.format           pdf or text
  extraction.processors   comma separated clean-up steps, e.g. collapse,linetrim`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Branding]")
	cmd.Printf("  Company: %s\n", settings.Branding.CompanyName)
	cmd.Println()

	cmd.Println("[Output]")
	dir := settings.Output.Directory
	if dir == "" {
		dir = "(current directory)"
	}
	cmd.Printf("  Directory: %s\n", dir)
	cmd.Printf("  Format: %s\n", settings.Output.Format.Description())
	cmd.Println()

	cmd.Println("[Extraction]")
	procs := strings.Join(settings.Pipeline.Processors, ", ")
	if procs == "" {
		procs = "(none)"
	}
	cmd.Printf("  Processors: %s\n", procs)
	available := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(available)
	for _, info := range available.Describe() {
		cmd.Printf("    %-10s %s\n", info.Name, info.Summary)
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'orderform settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s set to %q\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	reader := bufio.NewReader(stdin)

	cmd.Println("Order Form Setup")
	cmd.Println("================")
	cmd.Println()

	cmd.Printf("Company name [%s]: ", settings.Branding.CompanyName)
	if name := readLine(reader); name != "" {
		if err := settingsService.SetCompanyName(name); err != nil {
			return fmt.Errorf("failed to set company name: %w", err)
		}
	}

	cmd.Println()
	cmd.Println("Select Output Format")
	formats := domain.AllOutputFormats()
	current := 1
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f.Description())
		if f == settings.Output.Format {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	idx := parseChoice(readLine(reader), len(formats), current)
	if err := settingsService.SetOutputFormat(formats[idx-1]); err != nil {
		return fmt.Errorf("failed to set output format: %w", err)
	}

	dir := settings.Output.Directory
	if dir == "" {
		dir = "."
	}
	cmd.Printf("Output directory [%s]: ", dir)
	if input := readLine(reader); input != "" {
		if err := settingsService.SetOutputDirectory(input); err != nil {
			return fmt.Errorf("failed to set output directory: %w", err)
		}
	}

	cmd.Println()
	cmd.Println("Settings saved. Known keys for 'orderform settings set':")
	for _, key := range services.SettingKeys() {
		cmd.Printf("  %s\n", key)
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
