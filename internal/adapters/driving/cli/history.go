package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated order forms",
	Long: `Lists the order forms saved by generate, new and the TUI, newest first.
Records are kept in ~/.orderform/data/history.db; --ephemeral runs start empty.`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one history record",
	Long:  "Shows a history record. The id may be shortened to any unique prefix.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a history record",
	Long:    "Removes a history record. The saved form file is left untouched.",
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryRemove,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum records to list (0 for all)")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", formatText, "output format: text or json")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	rootCmd.AddCommand(historyCmd)
}

// historyEntry is the machine-readable form of a record.
type historyEntry struct {
	ID          string `json:"id"`
	Customer    string `json:"customer"`
	CompanyName string `json:"company_name"`
	Format      string `json:"format"`
	Path        string `json:"path"`
	Services    int    `json:"services"`
	Total       string `json:"total"`
	EndDate     string `json:"end_date,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func newHistoryEntry(r domain.FormRecord) historyEntry {
	entry := historyEntry{
		ID:          r.ID,
		Customer:    r.Customer,
		CompanyName: r.CompanyName,
		Format:      string(r.Format),
		Path:        r.Path,
		Services:    r.Services,
		Total:       r.Total.StringFixed(2),
		CreatedAt:   r.CreatedAt.Local().Format("2006-01-02 15:04"),
	}
	if r.EndDate != nil {
		entry.EndDate = r.EndDate.Format(domain.DateLayout)
	}
	return entry
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history not configured")
	}
	switch historyFormat {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("unknown format %q (use text or json)", historyFormat)
	}

	records, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyFormat == formatJSON {
		entries := make([]historyEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, newHistoryEntry(r))
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No order forms generated yet.")
		return nil
	}
	for _, r := range records {
		e := newHistoryEntry(r)
		customer := e.Customer
		if customer == "" {
			customer = "(no customer)"
		}
		cmd.Printf("%s  %s  %-28s %14s  %s\n", shortID(e.ID), e.CreatedAt, customer, domain.FormatMoney(r.Total), e.Format)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history not configured")
	}
	record, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to find record: %w", err)
	}

	e := newHistoryEntry(*record)
	cmd.Printf("ID:        %s\n", e.ID)
	cmd.Printf("Customer:  %s\n", e.Customer)
	cmd.Printf("Seller:    %s\n", e.CompanyName)
	cmd.Printf("Services:  %d\n", e.Services)
	cmd.Printf("Total:     %s\n", domain.FormatMoney(record.Total))
	if e.EndDate != "" {
		cmd.Printf("End date:  %s\n", e.EndDate)
	}
	cmd.Printf("Format:    %s\n", e.Format)
	cmd.Printf("File:      %s\n", e.Path)
	cmd.Printf("Generated: %s\n", e.CreatedAt)
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history not configured")
	}
	if err := historyService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove record: %w", err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

// shortID trims a UUID to its first block for listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
