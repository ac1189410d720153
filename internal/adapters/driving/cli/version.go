package cli

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/services"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build details",
	Run: func(cmd *cobra.Command, _ []string) {
		if versionShort {
			cmd.Println(version)
			return
		}
		cmd.Printf("orderform %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if schema != nil {
			cmd.Printf("  fields:  %d\n", schema.Len())
		}
		cmd.Printf("  inputs:  %s\n", strings.Join(services.SupportedExtensions(), " "))

		formats := domain.AllOutputFormats()
		names := make([]string, len(formats))
		for i, f := range formats {
			names[i] = string(f)
		}
		cmd.Printf("  outputs: %s\n", strings.Join(names, " "))
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}
