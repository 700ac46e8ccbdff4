package argentinadatos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncasas/mepreal"
)

func TestBolsa(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/cotizaciones/dolares/bolsa" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{"casa": "bolsa", "compra": 1232.9, "venta": 1235.5, "fecha": "2024-04-30"},
			{"casa": "bolsa", "compra": 1010.0, "venta": 1014.5, "fecha": "2024-04-15"},
			{"casa": "bolsa", "compra": 0, "venta": 0, "fecha": "2024-04-16"}
		]`))
	}))
	defer srv.Close()

	s, err := New(WithBaseURL(srv.URL)).Bolsa(context.Background())
	if err != nil {
		t.Fatalf("Bolsa: %v", err)
	}

	// The ask side is consumed; the zero quote is dropped.
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s[0].Value != 1014.5 || s[1].Value != 1235.5 {
		t.Errorf("values = %v, %v; want 1014.5, 1235.5 sorted ascending", s[0].Value, s[1].Value)
	}
}

func TestBolsa_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"gateway down", http.StatusBadGateway, "", mepreal.ErrSourceUnavailable},
		{"not json", http.StatusOK, "oops", mepreal.ErrSourceFormat},
		{"empty", http.StatusOK, "[]", mepreal.ErrNoData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(WithBaseURL(srv.URL)).Bolsa(context.Background())
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSource(t *testing.T) {
	if got, want := New().Source().Name(), "argentinadatos:bolsa"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}
