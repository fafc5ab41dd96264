package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/infrastructure/inventoryapi"
)

// Textos del formulario.
const (
	SubmitLabel          = "Record Movement"
	SubmittingLabel      = "Recording..."
	TransportErrorText   = "An error occurred"
	msgSelectItem        = "Please select an item in the list."
	msgFillQuantity      = "Please fill out this field."
	msgQuantityBelowMin  = "Value must be greater than or equal to 1."
	quantityPlaceholder  = "Enter quantity"
	adjustmentQtyExample = "e.g. -4 or 12"
)

type formField int

const (
	fieldItem formField = iota
	fieldType
	fieldQuantity
	fieldCount
)

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var formKeys = formKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
	Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "record")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Right, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Left, k.Right}, {k.Submit, k.Cancel}}
}

// MovementForm formulario de registro de movimientos.
// Estados: Idle → Submitting → (éxito: Succeeded, emite MovementSubmittedMsg | fallo: Idle
// con el error visible). Succeeded es terminal: no admite otro envío hasta que el detalle
// oculte el formulario.
type MovementForm struct {
	id      formKey
	api     MovementCreator
	items   []entity.Item
	timeout time.Duration
	log     zerolog.Logger

	itemIdx      int // -1 sin selección
	movementType entity.MovementType
	quantity     textinput.Model
	focus        formField

	submitting bool
	succeeded  bool
	err        string // error devuelto por la API
	invalid    string // restricción de entrada incumplida
}

// NewMovementForm crea el formulario con la selección vacía, cantidad vacía y tipo IN.
// id distingue montajes sucesivos para descartar respuestas de un formulario ya cerrado.
func NewMovementForm(id formKey, api MovementCreator, items []entity.Item, timeout time.Duration, log zerolog.Logger) MovementForm {
	ti := textinput.New()
	ti.Placeholder = quantityPlaceholder
	ti.Prompt = ""
	ti.CharLimit = 20
	ti.Width = 20
	return MovementForm{
		id:           id,
		api:          api,
		items:        items,
		timeout:      timeout,
		log:          log,
		itemIdx:      -1,
		movementType: entity.MovementTypeIN,
		quantity:     ti,
	}
}

// SelectedItemID id del item elegido, "" si no hay selección.
func (f MovementForm) SelectedItemID() string {
	if f.itemIdx < 0 || f.itemIdx >= len(f.items) {
		return ""
	}
	return strconv.FormatInt(f.items[f.itemIdx].ID, 10)
}

// Submitting indica si hay un envío en curso.
func (f MovementForm) Submitting() bool { return f.submitting }

// Succeeded indica que el movimiento ya se registró y el formulario espera a ser ocultado.
func (f MovementForm) Succeeded() bool { return f.succeeded }

// Err mensaje de error mostrado bajo el formulario.
func (f MovementForm) Err() string { return f.err }

// Capturing indica si las teclas van al campo de texto de la cantidad.
func (f MovementForm) Capturing() bool { return f.focus == fieldQuantity }

// SetItems reemplaza los items candidatos conservando la selección por id.
func (f *MovementForm) SetItems(items []entity.Item) {
	selected := f.SelectedItemID()
	f.items = items
	f.itemIdx = -1
	for i, it := range items {
		if strconv.FormatInt(it.ID, 10) == selected {
			f.itemIdx = i
			break
		}
	}
}

// Update procesa teclas y el resultado del envío.
func (f MovementForm) Update(msg tea.Msg) (MovementForm, tea.Cmd) {
	switch msg := msg.(type) {
	case movementSubmitResultMsg:
		if msg.formID != f.id {
			return f, nil
		}
		f.submitting = false
		if msg.err == nil {
			f.succeeded = true
			return f, func() tea.Msg { return MovementSubmittedMsg{} }
		}
		f.err = submitErrorText(msg.err)
		f.log.Warn().Err(msg.err).Str("item_id", f.SelectedItemID()).Msg("movimiento rechazado")
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, formKeys.Cancel):
			return f, func() tea.Msg { return FormCancelledMsg{} }
		case key.Matches(msg, formKeys.Submit):
			return f.submit()
		case key.Matches(msg, formKeys.Next):
			return f.setFocus((f.focus + 1) % fieldCount)
		case key.Matches(msg, formKeys.Prev):
			return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		}
		switch f.focus {
		case fieldItem:
			f.cycleItem(msg)
			return f, nil
		case fieldType:
			f.cycleType(msg)
			return f, nil
		}
	}

	if f.focus == fieldQuantity {
		var cmd tea.Cmd
		f.quantity, cmd = f.quantity.Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f MovementForm) setFocus(field formField) (MovementForm, tea.Cmd) {
	f.focus = field
	if field == fieldQuantity {
		return f, f.quantity.Focus()
	}
	f.quantity.Blur()
	return f, nil
}

func (f *MovementForm) cycleItem(msg tea.KeyMsg) {
	if len(f.items) == 0 {
		return
	}
	switch {
	case key.Matches(msg, formKeys.Right):
		f.itemIdx = (f.itemIdx + 1) % len(f.items)
	case key.Matches(msg, formKeys.Left):
		if f.itemIdx <= 0 {
			f.itemIdx = len(f.items) - 1
		} else {
			f.itemIdx--
		}
	}
}

func (f *MovementForm) cycleType(msg tea.KeyMsg) {
	types := entity.MovementTypes()
	idx := 0
	for i, t := range types {
		if t == f.movementType {
			idx = i
		}
	}
	switch {
	case key.Matches(msg, formKeys.Right):
		idx = (idx + 1) % len(types)
	case key.Matches(msg, formKeys.Left):
		idx = (idx + len(types) - 1) % len(types)
	default:
		return
	}
	f.movementType = types[idx]
	if f.movementType == entity.MovementTypeADJUSTMENT {
		f.quantity.Placeholder = adjustmentQtyExample
	} else {
		f.quantity.Placeholder = quantityPlaceholder
	}
}

// constraintViolation aplica las restricciones de entrada previas al envío.
// Un texto no numérico no se valida aquí: lo rechaza la API.
func (f MovementForm) constraintViolation() string {
	if f.SelectedItemID() == "" {
		return msgSelectItem
	}
	raw := strings.TrimSpace(f.quantity.Value())
	if raw == "" {
		return msgFillQuantity
	}
	if f.movementType == entity.MovementTypeIN || f.movementType == entity.MovementTypeOUT {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v < 1 {
			return msgQuantityBelowMin
		}
	}
	return ""
}

func (f MovementForm) submit() (MovementForm, tea.Cmd) {
	if f.submitting || f.succeeded {
		return f, nil
	}
	if v := f.constraintViolation(); v != "" {
		f.invalid = v
		return f, nil
	}
	f.invalid = ""
	f.err = ""
	f.submitting = true

	api, timeout, formID, itemID := f.api, f.timeout, f.id, f.SelectedItemID()
	params := dto.MovementParams{
		Quantity:     ParseQuantity(f.quantity.Value()),
		MovementType: string(f.movementType),
	}
	return f, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return movementSubmitResultMsg{formID: formID, err: api.CreateMovement(ctx, itemID, params)}
	}
}

func submitErrorText(err error) string {
	var apiErr *inventoryapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return TransportErrorText
}

// ParseQuantity toma el entero inicial del texto: espacios iniciales, signo opcional y
// dígitos hasta el primer carácter que no lo sea ("12abc" → 12, "3.7" → 3).
// Devuelve nil si no hay dígitos o el número no cabe en int64; la API lo rechaza como vacío.
func ParseQuantity(s string) *int64 {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// View dibuja el formulario.
func (f MovementForm) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New Movement"))
	b.WriteString("\n\n")

	itemLabel := subtleStyle.Render("Select an item")
	if idx := f.itemIdx; idx >= 0 && idx < len(f.items) {
		itemLabel = fmt.Sprintf("%s (%s)", f.items[idx].Name, f.items[idx].SKU)
	}
	b.WriteString(f.row(fieldItem, "Item", "‹ "+itemLabel+" ›"))
	b.WriteString(f.row(fieldType, "Type", "‹ "+string(f.movementType)+" ›"))
	b.WriteString(f.row(fieldQuantity, "Quantity", f.quantity.View()))
	b.WriteString("\n")

	if f.submitting || f.succeeded {
		b.WriteString(disabledStyle.Render(SubmittingLabel))
	} else {
		b.WriteString(buttonStyle.Render(SubmitLabel))
	}
	b.WriteString("  " + subtleStyle.Render("esc cancel"))

	if f.invalid != "" {
		b.WriteString("\n" + errorStyle.Render(f.invalid))
	}
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err))
	}
	return boxStyle.Render(b.String())
}

func (f MovementForm) row(field formField, label, value string) string {
	l := lipgloss.NewStyle().Width(10).Render(label + ":")
	if f.focus == field {
		l = selectedStyle.Width(10).Render(label + ":")
	}
	return l + " " + value + "\n"
}
