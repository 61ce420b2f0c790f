// Package client implements the public company-registry lookup used to
// enrich leads from their CNPJ.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

var (
	// ErrNotFound is returned when the registry has no record for the CNPJ.
	ErrNotFound = errors.New("cnpj not found in registry")
	// ErrInvalidCNPJ is returned when the input is not 14 digits.
	ErrInvalidCNPJ = errors.New("invalid cnpj")
	// ErrUnavailable is returned on registry-side failures; callers may retry.
	ErrUnavailable = errors.New("registry unavailable")
)

var nonDigits = regexp.MustCompile(`\D`)

// Company is the registry record for one CNPJ.
type Company struct {
	CNPJ         string  `json:"cnpj"`
	LegalName    string  `json:"razao_social"`
	TradeName    string  `json:"nome_fantasia"`
	City         string  `json:"municipio"`
	State        string  `json:"uf"`
	LegalNature  string  `json:"natureza_juridica"`
	OpenedOn     string  `json:"data_inicio_atividade"`
	ShareCapital float64 `json:"capital_social"`
}

// Client queries a BrasilAPI-compatible registry endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a registry client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NormalizeCNPJ strips formatting and validates the length.
func NormalizeCNPJ(raw string) (string, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) != 14 {
		return "", ErrInvalidCNPJ
	}
	return digits, nil
}

// Lookup fetches the registry record for a CNPJ.
func (c *Client) Lookup(ctx context.Context, cnpj string) (Company, error) {
	normalized, err := NormalizeCNPJ(cnpj)
	if err != nil {
		return Company{}, err
	}

	url := fmt.Sprintf("%s/api/cnpj/v1/%s", c.baseURL, normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Company{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Company{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Company{}, ErrNotFound
	case resp.StatusCode >= 500:
		return Company{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Company{}, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var company Company
	if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return Company{}, fmt.Errorf("decode registry response: %w", err)
	}
	return company, nil
}
