package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/stockpulse/internal/common"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("%w: bad symbol", common.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{fmt.Errorf("%w: gone", common.ErrNotFound), http.StatusNotFound, "not_found"},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{context.Canceled, http.StatusServiceUnavailable, "cancelled"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		status, code := StatusForError(tt.err)
		if status != tt.wantStatus || code != tt.wantCode {
			t.Errorf("StatusForError(%v) = %d %q, want %d %q", tt.err, status, code, tt.wantStatus, tt.wantCode)
		}
	}
}

func TestWriteServiceError_Envelope(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteServiceError(rr, fmt.Errorf("%w: unsupported period", common.ErrInvalidInput))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != false {
		t.Errorf("Expected success=false, got %v", body["success"])
	}
	if body["code"] != "invalid_input" {
		t.Errorf("Expected code=invalid_input, got %v", body["code"])
	}
	if !strings.Contains(body["error"].(string), "unsupported period") {
		t.Errorf("Expected descriptive message, got %v", body["error"])
	}
}

func TestWriteData_Envelope(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteData(rr, map[string]int{"n": 1}, true)

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
		Cached  bool           `json:"cached"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || !body.Cached || body.Data["n"] != 1 {
		t.Errorf("Unexpected envelope: %+v", body)
	}
}

func TestRequireMethod(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/stocks/trending", nil)
	if RequireMethod(rr, req, http.MethodGet, http.MethodHead) {
		t.Fatal("Expected RequireMethod to reject DELETE")
	}
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("Expected Allow header 'GET, HEAD', got %q", allow)
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/stocks/compare", strings.NewReader("{not json"))
	var v map[string]any
	if DecodeJSON(rr, req, &v) {
		t.Fatal("Expected DecodeJSON to fail")
	}
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestPathParam(t *testing.T) {
	tests := []struct {
		path, prefix, suffix, want string
	}{
		{"/api/stocks/quote/AAPL", "/api/stocks/quote/", "", "AAPL"},
		{"/api/stocks/quote/AAPL/extra", "/api/stocks/quote/", "", "AAPL"},
		{"/api/stocks/history/MSFT/chart", "/api/stocks/history/", "/chart", "MSFT"},
		{"/api/other", "/api/stocks/", "", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if got := PathParam(req, tt.prefix, tt.suffix); got != tt.want {
			t.Errorf("PathParam(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
