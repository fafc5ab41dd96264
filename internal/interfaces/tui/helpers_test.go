package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/infrastructure/inventoryapi"
)

const testTimeout = time.Second

// testFormKey clave del primer formulario de la primera vista de detalle.
var testFormKey = formKey{detail: 1, form: 1}

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListItems(ctx context.Context) ([]entity.Item, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]entity.Item)
	return items, args.Error(1)
}

func (m *mockAPI) ListMovements(ctx context.Context, itemID int64) ([]entity.Movement, error) {
	args := m.Called(ctx, itemID)
	movements, _ := args.Get(0).([]entity.Movement)
	return movements, args.Error(1)
}

func (m *mockAPI) CreateMovement(ctx context.Context, itemID string, params dto.MovementParams) error {
	args := m.Called(ctx, itemID, params)
	return args.Error(0)
}

// run ejecuta cmd y devuelve los mensajes producidos, expandiendo tea.Batch.
func run(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// runOne ejecuta cmd y exige exactamente un mensaje.
func runOne(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msgs := run(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("se esperaba 1 mensaje, se obtuvieron %d: %#v", len(msgs), msgs)
	}
	return msgs[0]
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func testItems() []entity.Item {
	return []entity.Item{
		{ID: 5, Name: "Tornillo", SKU: "TOR-5", Unit: "pcs", Stock: 20},
		{ID: 7, Name: "Tuerca", SKU: "TUE-7", Unit: "pcs", Stock: 3},
	}
}

func nopLog() zerolog.Logger { return zerolog.Nop() }

func apiErr422(msg string) error {
	return &inventoryapi.APIError{StatusCode: 422, Message: msg}
}
