package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
)

var (
	newFrom   string
	newOut    string
	newFormat string
)

// stdin and isTerminal are replaced in tests.
var (
	stdin      io.Reader = os.Stdin
	isTerminal           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Fill in an order form step by step",
	Long: `Walks through the Customer, Terms and Products steps with line prompts.
Press Enter to keep the value shown in brackets, or type - to clear it.

With --from, fields found in the document are filled in first. When input
is piped, prompts are not printed and the first incomplete step fails.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newFrom, "from", "", "document to pre-fill fields from")
	newCmd.Flags().StringVarP(&newOut, "out", "o", "", "output file or directory, - for stdout")
	newCmd.Flags().StringVarP(&newFormat, "format", "f", "", "output format: pdf or text (default from settings)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	session, err := newSession(newFormat)
	if err != nil {
		return err
	}
	if newFrom != "" {
		if err := importInto(cmd, session, newFrom); err != nil {
			return err
		}
	}

	p := &prompter{cmd: cmd, reader: bufio.NewReader(stdin), interactive: isTerminal()}
	for {
		step := session.Step()
		p.printf("\n== %s ==\n", step.Title())
		if err := p.fillStep(session, step); err != nil {
			return err
		}

		if step.IsLast() {
			ok, verr := session.CanAdvance()
			if ok {
				break
			}
			if err := p.retry(verr); err != nil {
				return err
			}
			continue
		}
		if err := session.Advance(); err != nil {
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				return err
			}
			if err := p.retry(verr); err != nil {
				return err
			}
		}
	}

	return writeForm(cmd.Context(), cmd, session, newOut)
}

// clearInput clears a field at a prompt.
const clearInput = "-"

// prompter asks for values on the command's output. Prompts are suppressed
// when input is not a terminal.
type prompter struct {
	cmd         *cobra.Command
	reader      *bufio.Reader
	interactive bool
	eof         bool
}

func (p *prompter) printf(format string, args ...any) {
	if p.interactive {
		p.cmd.Printf(format, args...)
	}
}

// readLine returns the next trimmed line. Once input is exhausted every
// call returns "" so defaults are kept.
func (p *prompter) readLine() string {
	if p.eof {
		return ""
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		p.eof = true
	}
	return strings.TrimSpace(line)
}

// retry reports findings and decides whether the step is asked again.
func (p *prompter) retry(verr *domain.ValidationError) error {
	if !p.interactive || p.eof {
		return fmt.Errorf("form incomplete: %w", verr)
	}
	p.cmd.Printf("\nCannot continue: %v\n", verr)
	return nil
}

func (p *prompter) fillStep(session driving.OrderSession, step domain.WizardStep) error {
	for _, def := range session.Schema().FieldsForStep(step) {
		if err := p.fillField(session, def); err != nil {
			return err
		}
	}
	if step == domain.StepProducts {
		return p.fillServices(session)
	}
	return nil
}

func (p *prompter) fillField(session driving.OrderSession, def domain.FieldDefinition) error {
	for {
		current, suggested := "", false
		if v, ok := session.Effective(def.Name); ok {
			current = v.String()
		} else {
			current, suggested = session.Suggestion(def.Name)
		}
		p.printf("%s", def.Label)
		if len(def.Options) > 0 {
			p.printf(" (%s)", strings.Join(def.Options, " | "))
		} else if def.Help != "" {
			p.printf(" (%s)", def.Help)
		}
		p.printf(" [%s]: ", current)

		input := p.readLine()
		switch {
		case input == "" && suggested && p.interactive:
			input = current
		case input == "":
			return nil
		case input == clearInput:
			return session.ClearField(def.Name)
		}

		err := session.SetFieldText(def.Name, input)
		if err == nil {
			return nil
		}
		if !p.interactive || p.eof {
			return fmt.Errorf("%s: %w", def.Name, err)
		}
		p.cmd.Printf("  %v\n", err)
	}
}

// fillServices offers the products for the chosen warehouse type, then asks
// for the usage and fee of each row.
func (p *prompter) fillServices(session driving.OrderSession) error {
	warehouse := domain.WarehouseCloud
	if v, ok := session.Effective(domain.FieldWarehouseType); ok {
		warehouse = v.Text()
	}
	tier := ""
	if v, ok := session.Effective(domain.FieldSupportTier); ok {
		tier = v.Text()
	}

	options := domain.ProductOptions(warehouse)
	selected := domain.SelectedProducts(session.LineItems(), warehouse)
	p.printf("\nProducts for %s:\n", warehouse)
	for i, name := range options {
		p.printf("  %d. %s\n", i+1, name)
	}
	p.printf("Select products by number, comma separated [%s]: ", strings.Join(selected, ", "))
	if input := p.readLine(); input != "" {
		selected = parseSelection(input, options)
	}
	session.SelectProducts(selected, tier)

	for i, item := range session.LineItems() {
		usage := item.AnnualUsageCommitment
		if !item.IsSupport() {
			p.printf("%s annual usage commitment [%s]: ", item.Service, usage)
			if input := p.readLine(); input != "" {
				item.AnnualUsageCommitment = input
			}
		}
		for {
			p.printf("%s annual service fee [%s]: ", item.Service, item.AnnualServiceFee.StringFixed(2))
			input := p.readLine()
			if input == "" {
				break
			}
			fee, err := domain.ParseMoney(input)
			if err == nil {
				item.AnnualServiceFee = fee
				break
			}
			if !p.interactive || p.eof {
				return fmt.Errorf("%s fee: %w", item.Service, err)
			}
			p.cmd.Printf("  %v\n", err)
		}
		if err := session.UpdateLineItem(i, item); err != nil {
			return err
		}
	}

	if total := session.Computed().GrandTotal; !total.IsZero() {
		p.printf("Total: %s\n", domain.FormatMoney(total))
	}
	return nil
}

// parseSelection maps "1, 3" to option names. Out of range and duplicate
// numbers are ignored.
func parseSelection(input string, options []string) []string {
	seen := make(map[int]bool)
	var out []string
	for _, part := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(options) || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, options[n-1])
	}
	return out
}
