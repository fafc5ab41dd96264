package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// Textos de la vista de detalle.
const (
	LoadingText      = "Loading movements..."
	NoMovementsText  = "No movements recorded yet."
	historyTitleText = "Movement History"
)

type detailKeyMap struct {
	Toggle key.Binding
	Back   key.Binding
}

var detailKeys = detailKeyMap{
	Toggle: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "new movement")),
	Back:   key.NewBinding(key.WithKeys("esc", "backspace", "b"), key.WithHelp("esc", "back")),
}

func (k detailKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Toggle, k.Back} }

func (k detailKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// ItemDetail muestra un item, su historial de movimientos y el formulario de registro.
//
// Tras un registro exitoso: recarga el historial, emite MovementCreatedMsg cuando la
// recarga termina y oculta el formulario cuando el padre le devuelve ese mensaje.
type ItemDetail struct {
	gen     int
	api     MovementAPI
	item    entity.Item
	items   []entity.Item
	timeout time.Duration
	log     zerolog.Logger
	help    help.Model

	movements []entity.Movement
	loading   bool
	seq       int

	showForm bool
	formSeq  int
	form     MovementForm
}

// NewItemDetail crea la vista para item. candidates son los items ofrecidos en el formulario.
// gen debe ser distinto en cada vista creada por la aplicación: forma parte de la clave de
// sus formularios. La carga del historial la inicia Init.
func NewItemDetail(gen int, api MovementAPI, item entity.Item, candidates []entity.Item, timeout time.Duration, log zerolog.Logger) ItemDetail {
	return ItemDetail{
		gen:     gen,
		api:     api,
		item:    item,
		items:   candidates,
		timeout: timeout,
		log:     log,
		help:    help.New(),
		loading: true,
		seq:     1,
	}
}

// Init carga el historial del item montado.
func (d ItemDetail) Init() tea.Cmd {
	return d.fetchMovements(false)
}

// Item devuelve el item mostrado.
func (d ItemDetail) Item() entity.Item { return d.item }

// Movements devuelve el historial mostrado.
func (d ItemDetail) Movements() []entity.Movement { return d.movements }

// Loading indica si la carga inicial del historial está pendiente.
func (d ItemDetail) Loading() bool { return d.loading }

// FormVisible indica si el formulario está abierto.
func (d ItemDetail) FormVisible() bool { return d.showForm }

// Form devuelve el formulario (solo significativo con FormVisible).
func (d ItemDetail) Form() MovementForm { return d.form }

// SetItem reemplaza el item mostrado. Si cambia su id se descarta el historial y se
// carga el del nuevo item; con el mismo id solo se actualizan los datos (p. ej. el stock).
func (d ItemDetail) SetItem(item entity.Item) (ItemDetail, tea.Cmd) {
	changed := item.ID != d.item.ID
	d.item = item
	if !changed {
		return d, nil
	}
	d.seq++
	d.loading = true
	d.movements = nil
	d.showForm = false
	return d, d.fetchMovements(false)
}

// SetCandidates actualiza los items ofrecidos por el formulario.
func (d ItemDetail) SetCandidates(items []entity.Item) ItemDetail {
	d.items = items
	if d.showForm {
		d.form.SetItems(items)
	}
	return d
}

func (d ItemDetail) fetchMovements(afterSubmit bool) tea.Cmd {
	api, timeout, itemID, seq := d.api, d.timeout, d.item.ID, d.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		movements, err := api.ListMovements(ctx, itemID)
		return movementsLoadedMsg{itemID: itemID, seq: seq, movements: movements, err: err, afterSubmit: afterSubmit}
	}
}

// Update procesa teclas, resultados de carga y mensajes del formulario.
func (d ItemDetail) Update(msg tea.Msg) (ItemDetail, tea.Cmd) {
	switch msg := msg.(type) {
	case movementsLoadedMsg:
		return d.applyMovements(msg)

	case MovementSubmittedMsg:
		d.seq++
		return d, d.fetchMovements(true)

	case MovementCreatedMsg:
		if msg.ItemID == d.item.ID {
			d.showForm = false
		}
		return d, nil

	case FormCancelledMsg:
		d.showForm = false
		return d, nil

	case movementSubmitResultMsg:
		if !d.showForm {
			return d, nil
		}
		var cmd tea.Cmd
		d.form, cmd = d.form.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		capturing := d.showForm && d.form.Capturing()
		if !capturing && key.Matches(msg, detailKeys.Toggle) {
			return d.toggleForm()
		}
		if d.showForm {
			var cmd tea.Cmd
			d.form, cmd = d.form.Update(msg)
			return d, cmd
		}
		if key.Matches(msg, detailKeys.Back) {
			return d, func() tea.Msg { return BackMsg{} }
		}
		return d, nil
	}

	if d.showForm {
		var cmd tea.Cmd
		d.form, cmd = d.form.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d ItemDetail) toggleForm() (ItemDetail, tea.Cmd) {
	if d.showForm {
		d.showForm = false
		return d, nil
	}
	d.formSeq++
	d.form = NewMovementForm(formKey{detail: d.gen, form: d.formSeq}, d.api, d.items, d.timeout, d.log)
	d.showForm = true
	return d, nil
}

func (d ItemDetail) applyMovements(msg movementsLoadedMsg) (ItemDetail, tea.Cmd) {
	if msg.itemID == d.item.ID && msg.seq == d.seq {
		d.loading = false
		if msg.err != nil {
			d.log.Error().Err(msg.err).Int64("item_id", msg.itemID).Msg("error cargando movimientos")
			d.movements = []entity.Movement{}
		} else if msg.movements == nil {
			d.movements = []entity.Movement{}
		} else {
			d.movements = msg.movements
		}
	}
	if !msg.afterSubmit {
		return d, nil
	}
	itemID := msg.itemID
	return d, func() tea.Msg { return MovementCreatedMsg{ItemID: itemID} }
}

// View dibuja el detalle.
func (d ItemDetail) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.item.Name))
	b.WriteString(" " + subtleStyle.Render(d.item.SKU))
	b.WriteString("\n")
	b.WriteString("Stock: " + renderStock(d.item))
	b.WriteString("\n\n")

	if d.showForm {
		b.WriteString(d.form.View())
		b.WriteString("\n\n")
	}

	b.WriteString(headerStyle.Render(historyTitleText))
	b.WriteString("\n")
	switch {
	case d.loading:
		b.WriteString(subtleStyle.Render(LoadingText))
	case len(d.movements) == 0:
		b.WriteString(subtleStyle.Render(NoMovementsText))
	default:
		b.WriteString(d.renderTable())
	}
	b.WriteString("\n\n")
	if d.showForm {
		b.WriteString(d.help.View(formKeys))
	} else {
		b.WriteString(d.help.View(detailKeys))
	}
	return b.String()
}

func (d ItemDetail) renderTable() string {
	col := func(w int) lipgloss.Style { return lipgloss.NewStyle().Width(w) }
	lines := []string{
		col(18).Render("Date") + col(12).Render("Type") + col(10).Render("Quantity"),
	}
	return strings.Join(append(lines, d.Rows()...), "\n")
}

// Rows una línea por movimiento, en el orden recibido de la API.
func (d ItemDetail) Rows() []string {
	col := func(w int) lipgloss.Style { return lipgloss.NewStyle().Width(w) }
	rows := make([]string, 0, len(d.movements))
	for _, m := range d.movements {
		qtyStyle := inStyle
		if m.MovementType == entity.MovementTypeOUT {
			qtyStyle = outStyle
		}
		rows = append(rows, col(18).Render(formatTimestamp(m.InsertedAt))+
			col(12).Render(string(m.MovementType))+
			qtyStyle.Width(10).Render(SignedQuantity(m)))
	}
	return rows
}
