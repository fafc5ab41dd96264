package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

type listKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var listKeys = listKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Refresh, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// ItemList listado de items con su stock.
type ItemList struct {
	api     ItemLister
	timeout time.Duration
	log     zerolog.Logger

	items   []entity.Item
	cursor  int
	loading bool
	err     error
}

// NewItemList crea el listado; la carga la inicia Init.
func NewItemList(api ItemLister, timeout time.Duration, log zerolog.Logger) ItemList {
	return ItemList{api: api, timeout: timeout, log: log, loading: true}
}

// Init carga los items.
func (l ItemList) Init() tea.Cmd { return l.fetch() }

// Items devuelve los items cargados.
func (l ItemList) Items() []entity.Item { return l.items }

// Find busca un item cargado por id.
func (l ItemList) Find(id int64) (entity.Item, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return entity.Item{}, false
}

func (l ItemList) fetch() tea.Cmd {
	api, timeout := l.api, l.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, err := api.ListItems(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

// Update procesa teclas y el resultado de la carga.
func (l ItemList) Update(msg tea.Msg) (ItemList, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		l.loading = false
		l.err = msg.err
		if msg.err != nil {
			l.log.Error().Err(msg.err).Msg("error cargando items")
			return l, nil
		}
		l.items = msg.items
		if l.cursor >= len(l.items) {
			l.cursor = max(len(l.items)-1, 0)
		}
		return l, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, listKeys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, listKeys.Down):
			if l.cursor < len(l.items)-1 {
				l.cursor++
			}
		case key.Matches(msg, listKeys.Refresh):
			l.loading = true
			return l, l.fetch()
		case key.Matches(msg, listKeys.Open):
			if l.cursor < len(l.items) {
				item := l.items[l.cursor]
				return l, func() tea.Msg { return openItemMsg{item: item} }
			}
		}
	}
	return l, nil
}

// View dibuja el listado.
func (l ItemList) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Inventory"))
	b.WriteString("\n\n")
	switch {
	case l.loading && len(l.items) == 0:
		b.WriteString(subtleStyle.Render("Loading items..."))
	case l.err != nil:
		b.WriteString(errorStyle.Render("Could not load items: " + l.err.Error()))
	case len(l.items) == 0:
		b.WriteString(subtleStyle.Render("No items yet."))
	default:
		col := func(w int) lipgloss.Style { return lipgloss.NewStyle().Width(w) }
		b.WriteString(headerStyle.Render(col(30).Render("Name") + col(16).Render("SKU") + "Stock"))
		for i, it := range l.items {
			line := col(30).Render(it.Name) + col(16).Render(it.SKU) + renderStock(it)
			cursor := "  "
			if i == l.cursor {
				cursor = selectedStyle.Render("> ")
			}
			b.WriteString("\n" + cursor + line)
		}
		b.WriteString("\n\n" + subtleStyle.Render(strconv.Itoa(len(l.items))+" items"))
	}
	return b.String()
}
