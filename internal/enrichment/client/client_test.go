package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeCNPJ(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12.345.678/0001-95", "12345678000195", false},
		{"12345678000195", "12345678000195", false},
		{"123", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeCNPJ(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCNPJ) {
				t.Fatalf("NormalizeCNPJ(%q): expected ErrInvalidCNPJ, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("NormalizeCNPJ(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cnpj/v1/12345678000195" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cnpj": "12345678000195",
			"razao_social": "ACME COMERCIO LTDA",
			"municipio": "SAO PAULO",
			"uf": "SP",
			"natureza_juridica": "Sociedade Empresária Limitada",
			"data_inicio_atividade": "2015-03-10",
			"capital_social": 250000
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	company, err := c.Lookup(context.Background(), "12.345.678/0001-95")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if company.LegalName != "ACME COMERCIO LTDA" || company.State != "SP" {
		t.Fatalf("unexpected company: %+v", company)
	}

	_, err = c.Lookup(context.Background(), "99999999000199")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupRegistryDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Lookup(context.Background(), "12345678000195")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
