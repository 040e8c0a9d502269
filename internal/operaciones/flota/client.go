// README: HTTP client for the flota service; implements Directory.
package flota

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client talks to the flota service over HTTP. Single attempt per call, no
// retries; a timeout on the underlying client bounds every request.
type Client struct {
	http    *http.Client
	baseURL string
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log,
	}
}

func (c *Client) TarifaActiva(ctx context.Context) (*Tarifa, error) {
	var t Tarifa
	if err := c.getJSON(ctx, c.baseURL+"/tarifas/actual", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) Camion(ctx context.Context, id int64) (*Camion, error) {
	var cam Camion
	if err := c.getJSON(ctx, fmt.Sprintf("%s/camiones/%d", c.baseURL, id), &cam); err != nil {
		return nil, err
	}
	return &cam, nil
}

func (c *Client) SetDisponibilidad(ctx context.Context, id int64, disponible bool) error {
	body, _ := json.Marshal(map[string]bool{"disponible": disponible})
	url := fmt.Sprintf("%s/camiones/%d/disponibilidad", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: disponibilidad camion %d: status %d", ErrUpstream, id, resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("flota request failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: status %d", ErrUpstream, url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, url, err)
	}
	return nil
}
