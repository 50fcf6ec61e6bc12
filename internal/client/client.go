// Package client предоставляет HTTP-клиент API пивной гонки.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmeshcher/beer-mile/internal/model"
	"github.com/mmeshcher/beer-mile/internal/scoring"
)

// ErrNotFound возвращается, если сервер не знает пилота.
var ErrNotFound = errors.New("not found")

// APIError описывает неуспешный ответ сервера.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// Is сопоставляет ответ 404 с ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client инкапсулирует HTTP-взаимодействие с сервером пивной гонки.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Catalog — списки допустимых значений и правила начисления очков.
type Catalog struct {
	Teams          []string      `json:"teams"`
	BeerTypes      []string      `json:"beer_types"`
	PenaltyReasons []string      `json:"penalty_reasons"`
	PubCount       int           `json:"pub_count"`
	Rules          scoring.Rules `json:"rules"`
	TrackLength    int           `json:"track_length"`
}

// Beer описывает запись о выпитом пиве.
type Beer struct {
	User     string  `json:"user"`
	Pub      int     `json:"pub"`
	BeerType string  `json:"beer_type"`
	Pints    float64 `json:"pints"`
}

// Penalty описывает штраф.
type Penalty struct {
	User          string `json:"user"`
	PenaltyReason string `json:"penalty_reason"`
	Points        int    `json:"points,omitempty"`
}

// NewClient создаёт HTTP-клиент для сервера по указанному адресу.
func NewClient(baseURL string) *Client {
	base := strings.TrimRight(baseURL, "/")
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Register регистрирует пилота в команде.
func (c *Client) Register(ctx context.Context, name, team string) (*model.Registration, error) {
	var reg model.Registration
	if err := c.do(ctx, http.MethodPost, "/api/drivers", model.Registration{Name: name, Team: team}, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Drivers возвращает зарегистрированных пилотов.
func (c *Client) Drivers(ctx context.Context) ([]model.Registration, error) {
	var regs []model.Registration
	if err := c.do(ctx, http.MethodGet, "/api/drivers", nil, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// LogBeer отправляет запись о выпитом пиве.
func (c *Client) LogBeer(ctx context.Context, beer Beer) (*Beer, error) {
	var res Beer
	if err := c.do(ctx, http.MethodPost, "/api/events/beer", beer, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// LogPenalty отправляет штраф.
func (c *Client) LogPenalty(ctx context.Context, user, reason string) (*Penalty, error) {
	var res Penalty
	if err := c.do(ctx, http.MethodPost, "/api/events/penalty", Penalty{User: user, PenaltyReason: reason}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Standings запрашивает текущий зачёт.
func (c *Client) Standings(ctx context.Context) (*scoring.Standings, error) {
	var res scoring.Standings
	if err := c.do(ctx, http.MethodGet, "/api/standings", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Catalog запрашивает списки допустимых значений.
func (c *Client) Catalog(ctx context.Context) (*Catalog, error) {
	var res Catalog
	if err := c.do(ctx, http.MethodGet, "/api/catalog", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Track запрашивает текстовую визуализацию трассы.
func (c *Client) Track(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/standings/track", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("client not configured")
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	return resp, nil
}
