// Package cli provides the orderform command line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
	"github.com/custodia-labs/orderform-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=1.2.3".
var version = "dev"

// envPrefix is prepended to environment overrides, e.g. ORDERFORM_VERBOSE.
const envPrefix = "ORDERFORM"

// Services used by the commands. They are wired on first use by
// PersistentPreRunE; tests assign them directly.
var (
	schema            *domain.FieldSchema
	extractionService driving.ExtractionService
	settingsService   driving.SettingsService
	sessionFactory    driving.SessionFactory
	historyService    driving.HistoryService
	servicesReady     bool

	// closeServices releases storage opened by prepareRuntime. It is nil
	// when the services were assigned from outside.
	closeServices func() error
)

// config carries root flags merged with ORDERFORM_* environment variables.
var config = viper.New()

var rootCmd = &cobra.Command{
	Use:   "orderform",
	Short: "Build order forms from deal documents",
	Long: `orderform turns a deal summary (.txt, .pdf or .docx) into a completed
order form. Fields found in the document are pre-filled; a three step wizard
(Customer, Terms, Products) collects the rest and renders the final form.`,
	SilenceUsage:       true,
	PersistentPreRunE:  prepareRuntime,
	PersistentPostRunE: releaseRuntime,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "print extraction details to stderr")
	flags.String("config-dir", "", "settings directory (default ~/.orderform)")
	flags.Bool("ephemeral", false, "keep settings and history in memory for this run only")

	_ = config.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = config.BindPFlag("config_dir", flags.Lookup("config-dir"))
	_ = config.BindPFlag("ephemeral", flags.Lookup("ephemeral"))

	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func prepareRuntime(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(config.GetBool("verbose"))
	if servicesReady {
		return nil
	}

	svc, err := NewServices(Options{
		ConfigDir: config.GetString("config_dir"),
		Ephemeral: config.GetBool("ephemeral"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	useServices(svc)
	closeServices = svc.Close
	return nil
}

func releaseRuntime(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	closeFn := closeServices
	closeServices = nil
	servicesReady = false
	return closeFn()
}

func useServices(svc *Services) {
	schema = svc.Schema
	extractionService = svc.Extraction
	settingsService = svc.Settings
	sessionFactory = svc.Sessions
	historyService = svc.History
	servicesReady = true
}
