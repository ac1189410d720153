// Package wizard provides the three step order form view for the TUI.
package wizard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driving"
	"github.com/custodia-labs/orderform-cli/internal/logger"
)

// Mode is what the wizard is currently editing.
type Mode int

const (
	// ModeFields edits the fields of the current step.
	ModeFields Mode = iota
	// ModeImport asks for a document path.
	ModeImport
	// ModeProducts is the product checklist of the final step.
	ModeProducts
	// ModeServices is the services table of the final step.
	ModeServices
	// ModeEditRow edits the usage and fee of one service row.
	ModeEditRow
	// ModeDone shows the saved form.
	ModeDone
)

var (
	errRequired = errors.New("required")
	errInvalid  = errors.New("invalid value")
)

// View is the order form wizard.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	sessions driving.SessionFactory
	settings driving.SettingsService
	history  driving.HistoryService
	ctx      context.Context

	session driving.OrderSession
	mode    Mode
	err     error
	verr    *domain.ValidationError

	// Step fields
	inputs []*input.FieldInput
	focus  int

	// Import
	importInput *input.FieldInput

	// Product checklist
	products []string
	checked  map[string]bool
	cursor   int

	// Services table
	services   *list.ServiceList
	usageInput *input.FieldInput
	feeInput   *input.FieldInput
	rowFocus   int

	statusbar *status.Bar
	savedPath string
	savedForm *domain.OrderForm

	width  int
	height int
	ready  bool
}

// NewView creates a new wizard view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	sessions driving.SessionFactory,
	settings driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	importInput := input.NewFieldInput(s, "document", "Document path")
	importInput.SetHelp("PDF, DOCX or text file")

	return &View{
		styles:      s,
		keymap:      km,
		sessions:    sessions,
		settings:    settings,
		ctx:         context.Background(),
		importInput: importInput,
		checked:     make(map[string]bool),
		services:    list.NewServiceList(s),
		usageInput:  input.NewFieldInput(s, "usage", "Annual usage"),
		feeInput:    input.NewFieldInput(s, "fee", "Annual fee"),
		statusbar:   status.NewBar(s, km),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context used for imports and generation.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithHistory records every saved form in h. A nil h disables recording.
func (v *View) WithHistory(h driving.HistoryService) *View {
	v.history = h
	return v
}

// Init starts a new session.
func (v *View) Init() tea.Cmd {
	return v.startSession()
}

// Resume continues the current form, or starts a new one when there is
// none or the last one was saved.
func (v *View) Resume() tea.Cmd {
	if v.session != nil && v.mode != ModeDone {
		return nil
	}
	v.Reset()
	return v.Init()
}

func (v *View) startSession() tea.Cmd {
	return func() tea.Msg {
		if v.sessions == nil {
			return messages.SessionStarted{Err: fmt.Errorf("session factory not available")}
		}
		format := domain.OutputFormatPDF
		if v.settings != nil {
			if s, err := v.settings.Get(); err == nil && s.Output.Format.IsValid() {
				format = s.Output.Format
			}
		}
		session, err := v.sessions.NewSession(format)
		return messages.SessionStarted{Session: session, Err: err}
	}
}

// Update handles messages for the wizard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SessionStarted:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.session = msg.Session
		v.err = nil
		v.mode = ModeFields
		v.statusbar.Clear()
		return v, v.buildInputs()

	case messages.DocumentImported:
		return v, v.handleImported(msg)

	case messages.FormGenerated:
		v.handleGenerated(msg)
		return v, nil

	case tea.KeyMsg:
		if v.session == nil {
			if keymap.Matches(msg.String(), v.keymap.Back) {
				return v, toMenu
			}
			return v, nil
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func toMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case ModeFields:
		return v, v.handleFieldKeys(msg)
	case ModeImport:
		return v, v.handleImportKeys(msg)
	case ModeProducts:
		return v, v.handleProductKeys(msg)
	case ModeServices:
		return v, v.handleServiceKeys(msg)
	case ModeEditRow:
		return v, v.handleEditRowKeys(msg)
	case ModeDone:
		switch msg.String() {
		case "enter":
			v.Reset()
			return v, v.Init()
		case "esc":
			return v, toMenu
		}
	}
	return v, nil
}

// Step fields.

func (v *View) handleFieldKeys(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		v.commitFocused()
		return toMenu

	case keymap.Matches(k, v.keymap.NextField):
		v.commitFocused()
		return v.moveFocus(1)

	case keymap.Matches(k, v.keymap.PrevField):
		v.commitFocused()
		return v.moveFocus(-1)

	case keymap.Matches(k, v.keymap.NextStep):
		return v.nextStep()

	case keymap.Matches(k, v.keymap.PrevStep):
		v.commitFocused()
		if err := v.session.GoBack(); err != nil {
			return nil
		}
		v.verr = nil
		return v.buildInputs()

	case keymap.Matches(k, v.keymap.Import):
		if v.session.Step() != domain.StepInputSource {
			return nil
		}
		v.commitFocused()
		v.blurInputs()
		v.mode = ModeImport
		v.importInput.SetError(nil)
		return v.importInput.Focus()
	}

	if in := v.focused(); in != nil {
		_, cmd := in.Update(msg)
		return cmd
	}
	return nil
}

// nextStep commits every input, then advances or opens the product
// checklist on the final step.
func (v *View) nextStep() tea.Cmd {
	if !v.commitAll() {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage("fix the highlighted fields")
		return nil
	}

	if v.session.Step().IsLast() {
		v.verr = nil
		v.openProducts()
		return nil
	}

	if err := v.session.Advance(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			v.showValidation(verr)
			return nil
		}
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return nil
	}
	v.verr = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	return v.buildInputs()
}

// buildInputs creates one input per field of the current step, seeded
// with the effective values.
func (v *View) buildInputs() tea.Cmd {
	defs := v.session.Schema().FieldsForStep(v.session.Step())
	v.inputs = make([]*input.FieldInput, 0, len(defs))
	for _, def := range defs {
		in := input.NewFieldInput(v.styles, def.Name, def.Label)
		in.SetHelp(fieldHelp(def))
		if hint, ok := v.session.Suggestion(def.Name); ok {
			in.SetPlaceholder(hint)
		}
		if val, ok := v.session.Effective(def.Name); ok {
			in.SetValue(val.String())
		}
		in.SetWidth(v.width)
		v.inputs = append(v.inputs, in)
	}
	v.mode = ModeFields
	v.focus = 0
	v.refreshRequired()
	return v.focusCurrent()
}

// syncInputs reloads input values from the session, keeping focus.
func (v *View) syncInputs() {
	for _, in := range v.inputs {
		value := ""
		if val, ok := v.session.Effective(in.Name()); ok {
			value = val.String()
		}
		in.SetValue(value)
		in.SetError(nil)
	}
	v.refreshRequired()
}

func fieldHelp(def domain.FieldDefinition) string {
	if len(def.Options) > 0 {
		return strings.Join(def.Options, " | ")
	}
	return def.Help
}

func (v *View) refreshRequired() {
	schema := v.session.Schema()
	for _, in := range v.inputs {
		def, err := schema.Get(in.Name())
		if err != nil {
			continue
		}
		in.SetRequired(def.IsRequired(v.session.Effective))
	}
}

// commit stores the input text in the session. Unchanged text is left
// alone so defaults stay defaults; blank text clears the field.
func (v *View) commit(in *input.FieldInput) error {
	text := strings.TrimSpace(in.Value())
	current := ""
	if val, ok := v.session.Effective(in.Name()); ok {
		current = val.String()
	}
	if text == current {
		in.SetError(nil)
		return nil
	}

	var err error
	if text == "" {
		err = v.session.ClearField(in.Name())
	} else {
		err = v.session.SetFieldText(in.Name(), text)
	}
	in.SetError(err)
	v.refreshRequired()
	return err
}

func (v *View) commitFocused() {
	if in := v.focused(); in != nil {
		_ = v.commit(in)
	}
}

// commitAll commits every input and reports whether all were accepted.
func (v *View) commitAll() bool {
	ok := true
	for _, in := range v.inputs {
		if err := v.commit(in); err != nil {
			ok = false
		}
	}
	return ok
}

func (v *View) showValidation(verr *domain.ValidationError) {
	v.verr = verr
	for _, in := range v.inputs {
		switch {
		case contains(verr.Missing, in.Name()):
			in.SetError(errRequired)
		case contains(verr.Invalid, in.Name()):
			in.SetError(errInvalid)
		}
	}
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage("cannot continue")
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func (v *View) focused() *input.FieldInput {
	if v.focus < 0 || v.focus >= len(v.inputs) {
		return nil
	}
	return v.inputs[v.focus]
}

func (v *View) moveFocus(delta int) tea.Cmd {
	if len(v.inputs) == 0 {
		return nil
	}
	v.focus = (v.focus + delta + len(v.inputs)) % len(v.inputs)
	return v.focusCurrent()
}

func (v *View) focusCurrent() tea.Cmd {
	v.blurInputs()
	if in := v.focused(); in != nil {
		return in.Focus()
	}
	return nil
}

func (v *View) blurInputs() {
	for _, in := range v.inputs {
		in.Blur()
	}
}

// Import.

func (v *View) handleImportKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.importInput.Blur()
		v.mode = ModeFields
		return v.focusCurrent()
	case "enter":
		path := strings.TrimSpace(v.importInput.Value())
		if path == "" {
			v.importInput.SetError(errRequired)
			return nil
		}
		v.statusbar.SetState(status.StateImporting)
		v.statusbar.SetMessage("")
		return v.importDocument(path)
	}
	_, cmd := v.importInput.Update(msg)
	return cmd
}

func (v *View) importDocument(path string) tea.Cmd {
	session := v.session
	ctx := v.ctx
	return func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return messages.DocumentImported{Path: path, Err: err}
		}
		result, err := session.ImportDocument(ctx, filepath.Base(path), content)
		return messages.DocumentImported{Path: path, Result: result, Err: err}
	}
}

func (v *View) handleImported(msg messages.DocumentImported) tea.Cmd {
	if msg.Err != nil {
		v.importInput.SetError(msg.Err)
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return nil
	}

	v.importInput.Reset()
	v.importInput.Blur()
	v.syncInputs()
	v.mode = ModeFields
	v.statusbar.SetState(status.StateReady)
	if msg.Result != nil {
		v.statusbar.SetMessage(fmt.Sprintf("Imported %s: %d fields found, %d filled",
			filepath.Base(msg.Path), msg.Result.Extraction.Len(), len(msg.Result.Merged)))
	}
	return v.focusCurrent()
}

// Product checklist.

func (v *View) warehouse() string {
	if val, ok := v.session.Effective(domain.FieldWarehouseType); ok && val.Text() != "" {
		return val.Text()
	}
	return domain.WarehouseCloud
}

func (v *View) supportTier() string {
	if val, ok := v.session.Effective(domain.FieldSupportTier); ok {
		return val.Text()
	}
	return ""
}

func (v *View) openProducts() {
	warehouse := v.warehouse()
	v.blurInputs()
	v.products = domain.ProductOptions(warehouse)
	v.checked = make(map[string]bool)
	for _, name := range domain.SelectedProducts(v.session.LineItems(), warehouse) {
		v.checked[name] = true
	}
	v.cursor = 0
	v.mode = ModeProducts
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

func (v *View) handleProductKeys(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return toMenu
	case keymap.Matches(k, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.cursor < len(v.products)-1 {
			v.cursor++
		}
	case keymap.Matches(k, v.keymap.Toggle):
		if v.cursor < len(v.products) {
			name := v.products[v.cursor]
			v.checked[name] = !v.checked[name]
		}
	case keymap.Matches(k, v.keymap.NextStep):
		v.session.SelectProducts(v.selectedProducts(), v.supportTier())
		v.refreshServices()
		v.mode = ModeServices
	case keymap.Matches(k, v.keymap.PrevStep):
		v.mode = ModeFields
		return v.focusCurrent()
	}
	return nil
}

// selectedProducts returns the checked products in catalog order.
func (v *View) selectedProducts() []string {
	var out []string
	for _, name := range v.products {
		if v.checked[name] {
			out = append(out, name)
		}
	}
	return out
}

// Services table.

func (v *View) refreshServices() {
	computed := v.session.Computed()
	v.services.SetItems(v.session.LineItems(), computed.LineTotals)
	if computed.GrandTotal.IsZero() {
		v.statusbar.SetTotal("")
	} else {
		v.statusbar.SetTotal(domain.FormatMoney(computed.GrandTotal))
	}
}

func (v *View) handleServiceKeys(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return toMenu
	case keymap.Matches(k, v.keymap.Select):
		return v.openRow()
	case keymap.Matches(k, v.keymap.RemoveRow):
		if v.services.IsEmpty() {
			return nil
		}
		if err := v.session.RemoveLineItem(v.services.Selected()); err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(err.Error())
			return nil
		}
		v.refreshServices()
	case keymap.Matches(k, v.keymap.PrevStep):
		v.openProducts()
	case keymap.Matches(k, v.keymap.Generate):
		v.statusbar.SetState(status.StateGenerating)
		v.statusbar.SetMessage("")
		return v.generate()
	default:
		v.services.Update(msg)
	}
	return nil
}

func (v *View) openRow() tea.Cmd {
	item, ok := v.services.SelectedItem()
	if !ok {
		return nil
	}
	v.usageInput.Reset()
	v.feeInput.Reset()
	v.usageInput.SetValue(item.AnnualUsageCommitment)
	v.usageInput.SetHelp(item.Unit)
	v.feeInput.SetValue(item.AnnualServiceFee.StringFixed(2))
	v.mode = ModeEditRow
	v.rowFocus = 0
	if item.IsSupport() {
		v.rowFocus = 1
	}
	return v.focusRowInput()
}

func (v *View) rowInputs() []*input.FieldInput {
	return []*input.FieldInput{v.usageInput, v.feeInput}
}

func (v *View) focusRowInput() tea.Cmd {
	v.usageInput.Blur()
	v.feeInput.Blur()
	return v.rowInputs()[v.rowFocus].Focus()
}

func (v *View) handleEditRowKeys(msg tea.KeyMsg) tea.Cmd {
	item, _ := v.services.SelectedItem()
	switch msg.String() {
	case "esc":
		v.usageInput.Blur()
		v.feeInput.Blur()
		v.mode = ModeServices
		return nil
	case "tab", "shift+tab":
		if !item.IsSupport() {
			v.rowFocus = 1 - v.rowFocus
			return v.focusRowInput()
		}
		return nil
	case "enter":
		return v.saveRow(item)
	}
	_, cmd := v.rowInputs()[v.rowFocus].Update(msg)
	return cmd
}

func (v *View) saveRow(item domain.ServiceLineItem) tea.Cmd {
	fee, err := domain.ParseMoney(v.feeInput.Value())
	if err != nil {
		v.feeInput.SetError(err)
		v.rowFocus = 1
		return v.focusRowInput()
	}
	if !item.IsSupport() {
		item.AnnualUsageCommitment = strings.TrimSpace(v.usageInput.Value())
	}
	item.AnnualServiceFee = fee
	if err := v.session.UpdateLineItem(v.services.Selected(), item); err != nil {
		v.feeInput.SetError(err)
		return nil
	}
	v.usageInput.Blur()
	v.feeInput.Blur()
	v.mode = ModeServices
	v.refreshServices()
	return nil
}

// Generation.

// outputDir returns the configured output directory, "" for the working
// directory.
func (v *View) outputDir() string {
	if v.settings == nil {
		return ""
	}
	s, err := v.settings.Get()
	if err != nil {
		return ""
	}
	return s.Output.Directory
}

// generate renders into memory first so a failed render leaves no file.
func (v *View) generate() tea.Cmd {
	session := v.session
	ctx := v.ctx
	dir := v.outputDir()
	history := v.history
	return func() tea.Msg {
		var buf bytes.Buffer
		form, err := session.Generate(ctx, &buf)
		if err != nil {
			return messages.FormGenerated{Err: err}
		}
		path := filepath.Join(dir, session.OutputFilename())
		if dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return messages.FormGenerated{Path: path, Err: err}
			}
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // generated forms are meant to be shared
			return messages.FormGenerated{Path: path, Err: err}
		}
		if history != nil {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if _, err := history.Record(ctx, form, session.Format(), path); err != nil {
				logger.Warn("history: %v", err)
			}
		}
		return messages.FormGenerated{Path: path, Form: form}
	}
}

func (v *View) handleGenerated(msg messages.FormGenerated) {
	if msg.Err != nil {
		var verr *domain.ValidationError
		if errors.As(msg.Err, &verr) {
			v.verr = verr
		}
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}
	v.verr = nil
	v.savedPath = msg.Path
	v.savedForm = msg.Form
	v.mode = ModeDone
	v.statusbar.SetState(status.StateDone)
	v.statusbar.SetMessage("Wrote " + msg.Path)
}

// View renders the wizard.
func (v *View) View() string {
	if !v.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("New Order Form"))
	b.WriteString("\n\n")

	if v.session == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		} else {
			b.WriteString(v.styles.Muted.Render("Starting..."))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(v.renderSteps())
	b.WriteString("\n\n")

	switch v.mode {
	case ModeFields:
		b.WriteString(v.renderFields())
	case ModeImport:
		b.WriteString(v.renderImport())
	case ModeProducts:
		b.WriteString(v.renderProducts())
	case ModeServices, ModeEditRow:
		b.WriteString(v.renderServices())
	case ModeDone:
		b.WriteString(v.renderDone())
	}

	if v.verr != nil && v.mode != ModeDone {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Cannot continue: " + v.verr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	v.statusbar.SetStep(v.stepLabel())
	v.statusbar.SetHints(v.hints())
	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) stepLabel() string {
	step := v.session.Step()
	return fmt.Sprintf("Step %d/%d %s", int(step)+1, len(domain.AllSteps()), step.Title())
}

func (v *View) renderSteps() string {
	current := v.session.Step()
	parts := make([]string, 0, len(domain.AllSteps()))
	for _, step := range domain.AllSteps() {
		switch {
		case step < current:
			parts = append(parts, v.styles.StepDone.Render(step.Title()))
		case step == current:
			parts = append(parts, v.styles.StepCurrent.Render(step.Title()))
		default:
			parts = append(parts, v.styles.StepPending.Render(step.Title()))
		}
	}
	return strings.Join(parts, v.styles.Muted.Render(" > "))
}

func (v *View) renderFields() string {
	var b strings.Builder
	for _, in := range v.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	computed := v.session.Computed()
	if v.session.Step() == domain.StepTerms && computed.EndDate != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("End Date: " + computed.EndDate.Format(domain.DateLayout)))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderImport() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Import Document"))
	b.WriteString("\n\n")
	b.WriteString(v.importInput.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Fields found in the document fill empty fields only."))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderProducts() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Products for " + v.warehouse()))
	b.WriteString("\n\n")
	if len(v.products) == 0 {
		b.WriteString(v.styles.Muted.Render("No products for this warehouse type"))
		b.WriteString("\n")
	}
	for i, name := range v.products {
		indicator := "  "
		if i == v.cursor {
			indicator = "> "
		}
		box := "[ ]"
		if v.checked[name] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", indicator, box, name)
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	if tier := v.supportTier(); tier != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Support: " + domain.SupportServiceName(tier)))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderServices() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Services"))
	b.WriteString("\n\n")
	b.WriteString(v.services.View())
	b.WriteString("\n")

	computed := v.session.Computed()
	b.WriteString("\n")
	b.WriteString(v.styles.Total.Render("Total: " + domain.FormatMoney(computed.GrandTotal)))
	b.WriteString("\n")
	if computed.ExcessUsageRate != "" {
		b.WriteString(v.styles.Muted.Render("Excess usage rate: " + computed.ExcessUsageRate))
		b.WriteString("\n")
	}

	if v.mode == ModeEditRow {
		item, _ := v.services.SelectedItem()
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(item.Service))
		b.WriteString("\n")
		if !item.IsSupport() {
			b.WriteString(v.usageInput.View())
			b.WriteString("\n")
		}
		b.WriteString(v.feeInput.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderDone() string {
	var b strings.Builder
	b.WriteString(v.styles.Success.Render("Order form saved"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("File: " + v.savedPath))
	b.WriteString("\n")
	if v.savedForm != nil {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Services: %d", len(v.savedForm.LineItems))))
		b.WriteString("\n")
		b.WriteString(v.styles.Total.Render("Total: " + domain.FormatMoney(v.savedForm.Computed.GrandTotal)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] new form  [esc] menu"))
	b.WriteString("\n")
	return b.String()
}

func (v *View) hints() []key.Binding {
	switch v.mode {
	case ModeFields:
		return v.keymap.FieldsHelp(v.session.Step() == domain.StepInputSource)
	case ModeProducts:
		return v.keymap.ProductsHelp()
	case ModeServices:
		return v.keymap.ServicesHelp()
	case ModeImport, ModeEditRow, ModeDone:
		return []key.Binding{v.keymap.Select, v.keymap.Back}
	}
	return nil
}

// Mode returns what the wizard is editing.
func (v *View) Mode() Mode {
	return v.mode
}

// Session returns the current session, nil before one is started.
func (v *View) Session() driving.OrderSession {
	return v.session
}

// Editing reports whether key presses go to a text input, so global
// single letter shortcuts must not fire.
func (v *View) Editing() bool {
	switch v.mode {
	case ModeFields, ModeImport, ModeEditRow:
		return v.session != nil
	default:
		return false
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, in := range v.inputs {
		in.SetWidth(width)
	}
	v.importInput.SetWidth(width)
	v.usageInput.SetWidth(width)
	v.feeInput.SetWidth(width)
	v.services.SetDimensions(width, height-12)
	v.statusbar.SetWidth(width)
}

// Reset drops the current session.
func (v *View) Reset() {
	v.session = nil
	v.mode = ModeFields
	v.err = nil
	v.verr = nil
	v.inputs = nil
	v.focus = 0
	v.products = nil
	v.checked = make(map[string]bool)
	v.cursor = 0
	v.services.SetItems(nil, nil)
	v.importInput.Reset()
	v.importInput.Blur()
	v.savedPath = ""
	v.savedForm = nil
	v.statusbar.Clear()
}
