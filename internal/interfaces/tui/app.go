// Package tui es el cliente de terminal de la API de inventario: listado de items,
// detalle con historial de movimientos y formulario de registro de movimientos.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// App modelo raíz: alterna entre el listado y el detalle de un item.
type App struct {
	api     API
	timeout time.Duration
	log     zerolog.Logger
	help    help.Model

	screen  screen
	list    ItemList
	detail  ItemDetail
	details int // vistas de detalle creadas
}

// NewApp crea la aplicación. timeout se aplica a cada petición a la API.
func NewApp(api API, timeout time.Duration, log zerolog.Logger) App {
	return App{
		api:     api,
		timeout: timeout,
		log:     log,
		help:    help.New(),
		list:    NewItemList(api, timeout, log),
	}
}

// Init carga el listado.
func (a App) Init() tea.Cmd {
	return a.list.Init()
}

// Update enruta los mensajes a la vista activa.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == screenList && key.Matches(msg, listKeys.Quit) {
			return a, tea.Quit
		}

	case openItemMsg:
		a.details++
		a.detail = NewItemDetail(a.details, a.api, msg.item, a.list.Items(), a.timeout, a.log)
		a.screen = screenDetail
		a.log.Debug().Int64("item_id", msg.item.ID).Msg("abriendo detalle")
		return a, a.detail.Init()

	case BackMsg:
		a.screen = screenList
		return a, nil

	case itemsLoadedMsg:
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		if a.screen == screenDetail && msg.err == nil {
			if item, ok := a.list.Find(a.detail.Item().ID); ok {
				var detailCmd tea.Cmd
				a.detail, detailCmd = a.detail.SetItem(item)
				cmd = tea.Batch(cmd, detailCmd)
			}
			a.detail = a.detail.SetCandidates(a.list.Items())
		}
		return a, cmd

	case MovementCreatedMsg:
		// Recarga de items independiente de la recarga del historial del detalle.
		var cmd tea.Cmd
		if a.screen == screenDetail {
			a.detail, cmd = a.detail.Update(msg)
		}
		return a, tea.Batch(a.list.fetch(), cmd)
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenDetail:
		a.detail, cmd = a.detail.Update(msg)
	default:
		a.list, cmd = a.list.Update(msg)
	}
	return a, cmd
}

// View dibuja la vista activa.
func (a App) View() string {
	if a.screen == screenDetail {
		return a.detail.View()
	}
	return a.list.View() + "\n\n" + a.help.View(listKeys)
}
