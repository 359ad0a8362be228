package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mogul/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Dashboard(ctx context.Context) (game.Dashboard, error) {
	var out game.Dashboard
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/dashboard", nil, &out)
	return out, err
}

func (c *Client) Investments(ctx context.Context) ([]game.InvestmentView, error) {
	var out struct {
		Investments []game.InvestmentView `json:"investments"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/investments", nil, &out)
	return out.Investments, err
}

func (c *Client) Lots(ctx context.Context) ([]game.LotView, error) {
	var out struct {
		Lots []game.LotView `json:"lots"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/lots", nil, &out)
	return out.Lots, err
}

func (c *Client) History(ctx context.Context) ([]game.SaleRecord, error) {
	var out struct {
		Sales []game.SaleRecord `json:"sales"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/history", nil, &out)
	return out.Sales, err
}

func (c *Client) Summary(ctx context.Context) (game.Summary, error) {
	var out game.Summary
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/summary", nil, &out)
	return out, err
}

func (c *Client) OpenPosition(ctx context.Context, definition string, amount float64) (game.PositionView, error) {
	var out game.PositionView
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/positions", map[string]any{
		"definition": definition,
		"amount":     amount,
	}, &out)
	return out, err
}

func (c *Client) SellPosition(ctx context.Context, positionID string) (game.SaleRecord, error) {
	var out game.SaleRecord
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/positions/"+url.PathEscape(positionID)+"/sell", nil, &out)
	return out, err
}

func (c *Client) ProjectValue(ctx context.Context, definition string, amount float64, ticks int64) (int64, error) {
	var out struct {
		ProjectedValueMicros int64 `json:"projected_value_micros"`
	}
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/positions/project", map[string]any{
		"definition": definition,
		"amount":     amount,
		"ticks":      ticks,
	}, &out)
	return out.ProjectedValueMicros, err
}

func (c *Client) UpgradeIncome(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/income/upgrade", map[string]any{}, &out)
	return out, err
}

func (c *Client) BuyLot(ctx context.Context, lotID string) error {
	return c.jsonRequest(ctx, http.MethodPost, "/v1/lots/"+url.PathEscape(lotID)+"/buy", map[string]any{}, nil)
}

func (c *Client) AdvanceTicks(ctx context.Context, count int) (int64, game.Outcome, error) {
	var out struct {
		Tick    int64        `json:"tick"`
		Outcome game.Outcome `json:"outcome"`
	}
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/ticks", map[string]any{"count": count}, &out)
	return out.Tick, out.Outcome, err
}

func (c *Client) Reset(ctx context.Context) error {
	return c.jsonRequest(ctx, http.MethodPost, "/v1/reset", map[string]any{}, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
