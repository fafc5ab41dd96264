// Package inventoryapi es el cliente REST de la API de inventario
// (GET/POST /api/items/{item_id}/movements, GET /api/items).
package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// DefaultCreateMovementError mensaje mostrado cuando el cuerpo de error no trae "error" ni "errors".
const DefaultCreateMovementError = "Failed to create movement"

// maxBody límite de lectura de respuestas.
const maxBody = 1 << 20

// Doer ejecuta peticiones HTTP (*http.Client o un adaptador en tests).
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client cliente de la API de inventario.
type Client struct {
	baseURL    string
	token      string
	httpClient Doer
}

// Option configura el cliente.
type Option func(*Client)

// WithToken envía "Authorization: Bearer <token>" en cada petición.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithDoer reemplaza el *http.Client por defecto.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// New construye el cliente. baseURL sin la barra final, ej. "http://localhost:4000".
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError respuesta no-2xx de la API. Message es el texto a mostrar al usuario.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ListItems GET /api/items.
func (c *Client) ListItems(ctx context.Context) ([]entity.Item, error) {
	var out dto.DataResponse[[]dto.ItemResponse]
	if err := c.getJSON(ctx, "/api/items", &out); err != nil {
		return nil, err
	}
	items := make([]entity.Item, 0, len(out.Data))
	for _, r := range out.Data {
		items = append(items, r.Entity())
	}
	return items, nil
}

// GetItem GET /api/items/{id}.
func (c *Client) GetItem(ctx context.Context, id int64) (*entity.Item, error) {
	var out dto.DataResponse[*dto.ItemResponse]
	if err := c.getJSON(ctx, "/api/items/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, fmt.Errorf("inventoryapi: respuesta sin data")
	}
	item := out.Data.Entity()
	return &item, nil
}

// ListMovements GET /api/items/{item_id}/movements. Un "data" ausente equivale a lista vacía;
// un cuerpo que no es JSON o con forma inesperada devuelve error.
func (c *Client) ListMovements(ctx context.Context, itemID int64) ([]entity.Movement, error) {
	var out dto.DataResponse[[]dto.MovementResponse]
	if err := c.getJSON(ctx, movementsPath(strconv.FormatInt(itemID, 10)), &out); err != nil {
		return nil, err
	}
	movements := make([]entity.Movement, 0, len(out.Data))
	for _, r := range out.Data {
		movements = append(movements, r.Entity())
	}
	return movements, nil
}

// CreateMovement POST /api/items/{item_id}/movements con {"movement": {...}}.
// itemID es el valor seleccionado en el formulario, sin convertir.
// Cualquier 2xx es éxito y el cuerpo se ignora; en otro caso devuelve *APIError.
func (c *Client) CreateMovement(ctx context.Context, itemID string, params dto.MovementParams) error {
	body, err := json.Marshal(dto.CreateMovementRequest{Movement: params})
	if err != nil {
		return fmt.Errorf("inventoryapi: serializar movimiento: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, movementsPath(itemID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inventoryapi: POST movimiento: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("inventoryapi: leer respuesta: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &APIError{StatusCode: resp.StatusCode, Message: ErrorMessage(raw, DefaultCreateMovementError)}
}

func movementsPath(itemID string) string {
	return "/api/items/" + url.PathEscape(itemID) + "/movements"
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("inventoryapi: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inventoryapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("inventoryapi: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: ErrorMessage(raw, http.StatusText(resp.StatusCode))}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("inventoryapi: decodificar %s: %w", path, err)
	}
	return nil
}
