package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

var (
	generateAnswers string
	generateFrom    string
	generateOut     string
	generateFormat  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render an order form from an answers file",
	Long: `Fills a form from a TOML answers file, optionally pre-filled from a
document, runs every wizard check and renders the result.

Top-level keys are field names (see 'orderform schema'). Two keys are
reserved for the services table:

  customer_name = "Acme Corp"
  start_date = 2024-03-01
  support_tier = "Premium"
  products = ["Platform Fee", "Experimentation"]

  [[line_items]]
  service = "Experimentation"
  usage = "10,000,000"
  annual_fee = 12000

Values in the answers file override anything found in --from.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateAnswers, "answers", "a", "", "TOML answers file (required)")
	generateCmd.Flags().StringVar(&generateFrom, "from", "", "document to pre-fill fields from")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output file or directory, - for stdout")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "output format: pdf or text (default from settings)")
	_ = generateCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(generateAnswers)
	if err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}
	ans, err := parseAnswers(data)
	if err != nil {
		return err
	}

	session, err := newSession(generateFormat)
	if err != nil {
		return err
	}
	if generateFrom != "" {
		if err := importInto(cmd, session, generateFrom); err != nil {
			return err
		}
	}
	if err := ans.apply(session); err != nil {
		return err
	}
	if err := advanceToFinal(session); err != nil {
		return fmt.Errorf("form incomplete: %w", err)
	}
	return writeForm(cmd.Context(), cmd, session, generateOut)
}

// Reserved answers keys.
const (
	answersProducts  = "products"
	answersLineItems = "line_items"
)

// answers is a decoded answers file.
type answers struct {
	Fields    map[string]string
	Products  []string
	LineItems []answerItem
}

// answerItem overrides one row of the services table. Blank values keep
// the row's current or catalog default.
type answerItem struct {
	Service   string `toml:"service"`
	Period    string `toml:"period"`
	Usage     any    `toml:"usage"`
	Unit      string `toml:"unit"`
	AnnualFee any    `toml:"annual_fee"`
}

func parseAnswers(data []byte) (*answers, error) {
	var table struct {
		Products  []string     `toml:"products"`
		LineItems []answerItem `toml:"line_items"`
	}
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: answers file: %v", domain.ErrInvalidInput, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: answers file: %v", domain.ErrInvalidInput, err)
	}
	delete(raw, answersProducts)
	delete(raw, answersLineItems)

	fields := make(map[string]string, len(raw))
	for key, v := range raw {
		text, err := answerText(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		fields[key] = text
	}

	return &answers{Fields: fields, Products: table.Products, LineItems: table.LineItems}, nil
}

// answerText converts a decoded TOML scalar to the text a user would type.
func answerText(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case time.Time:
		return t.Format(domain.DateLayout), nil
	case toml.LocalDate:
		return t.String(), nil
	case toml.LocalDateTime:
		return t.LocalDate.String(), nil
	default:
		return "", fmt.Errorf("expected a single value, got %T", v)
	}
}

// apply sets fields in schema order, then builds the services table.
func (a *answers) apply(session driving.OrderSession) error {
	s := session.Schema()

	var unknown []string
	for key := range a.Fields {
		if !s.Has(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("answers file: %w", &domain.UnknownFieldError{Name: unknown[0]})
	}

	for _, name := range s.Names() {
		raw, ok := a.Fields[name]
		if !ok {
			continue
		}
		if err := session.SetFieldText(name, raw); err != nil {
			return fmt.Errorf("answers file: %s: %w", name, err)
		}
	}

	tier := ""
	if v, ok := session.Effective(domain.FieldSupportTier); ok {
		tier = v.Text()
	}
	if len(a.Products) > 0 || tier != "" {
		session.SelectProducts(a.Products, tier)
	}

	for i, item := range a.LineItems {
		if err := applyLineItem(session, item); err != nil {
			return fmt.Errorf("answers file: line_items[%d]: %w", i, err)
		}
	}
	return nil
}

func applyLineItem(session driving.OrderSession, ans answerItem) error {
	service := strings.TrimSpace(ans.Service)
	if service == "" {
		return fmt.Errorf("%w: service is required", domain.ErrInvalidInput)
	}

	index := -1
	row := domain.NewLineItem(service)
	for i, existing := range session.LineItems() {
		if strings.TrimSpace(existing.Service) == service {
			index, row = i, existing
			break
		}
	}

	if ans.Period != "" {
		row.SubscriptionPeriod = ans.Period
	}
	if ans.Unit != "" {
		row.Unit = ans.Unit
	}
	usage, err := answerText(ans.Usage)
	if err != nil {
		return fmt.Errorf("usage: %w", err)
	}
	if usage != "" {
		row.AnnualUsageCommitment = usage
	}
	fee, err := answerText(ans.AnnualFee)
	if err != nil {
		return fmt.Errorf("annual_fee: %w", err)
	}
	if fee != "" {
		amount, err := domain.ParseMoney(fee)
		if err != nil {
			return fmt.Errorf("annual_fee: %w", err)
		}
		row.AnnualServiceFee = amount
	}

	if index < 0 {
		session.AddLineItem(row)
		return nil
	}
	return session.UpdateLineItem(index, row)
}
