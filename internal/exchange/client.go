// Package exchange проксирует внешний фид курсов валют.
// Один best-effort запрос к upstream на каждый вызов:
// без ретраев, без кэша, без таймаута.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNoData - в ответе upstream нет поля rates
	ErrNoData = errors.New("no exchange rates data found")
	// ErrRateNotFound - фид не знает такой код валюты
	ErrRateNotFound = errors.New("exchange rate not found for the specified currency code")
)

// UpstreamError - upstream ответил не-200 статусом; статус пробрасывается клиенту
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to fetch exchange rates: upstream status %d", e.Status)
}

// TransportError - сетевая ошибка или нечитаемый ответ
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Rate - курс одной валюты к базовой
type Rate struct {
	CurrencyCode string  `json:"currency_code"`
	Rate         float64 `json:"exchange_rate"`
}

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
}

// NewClient создает клиент фида. Ключ и URL приходят из конфигурации.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		HTTPClient: &http.Client{},
		BaseURL:    baseURL,
		APIKey:     apiKey,
	}
}

// fetchRates выполняет единственный запрос к upstream и разбирает поле rates
func (c *Client) fetchRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	q := req.URL.Query()
	q.Set("access_key", c.APIKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &TransportError{Err: err}
	}

	if payload.Rates == nil {
		return nil, ErrNoData
	}

	return payload.Rates, nil
}

// GetRates возвращает все курсы, отсортированные по коду валюты
func (c *Client) GetRates(ctx context.Context) ([]Rate, error) {
	rates, err := c.fetchRates(ctx)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	result := make([]Rate, 0, len(codes))
	for _, code := range codes {
		result = append(result, Rate{CurrencyCode: code, Rate: rates[code]})
	}

	return result, nil
}

// NormalizeCode приводит код валюты к каноническому виду фида
func NormalizeCode(currencyCode string) string {
	return strings.ToUpper(currencyCode)
}

// SearchRate ищет курс по коду валюты (регистр не важен)
func (c *Client) SearchRate(ctx context.Context, currencyCode string) (float64, error) {
	code := NormalizeCode(currencyCode)

	rates, err := c.fetchRates(ctx)
	if err != nil {
		return 0, err
	}

	rate, ok := rates[code]
	if !ok {
		return 0, ErrRateNotFound
	}

	return rate, nil
}
