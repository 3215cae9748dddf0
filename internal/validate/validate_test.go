package validate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

func TestRequest_Valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","quantity":3}`))
	w := httptest.NewRecorder()

	req, ok := Request[sampleRequest](w, r)
	if !ok {
		t.Fatalf("expected ok, body: %s", w.Body.String())
	}
	if req.Email != "a@b.com" || req.Quantity != 3 {
		t.Errorf("unexpected parse result: %+v", req)
	}
}

func TestRequest_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	w := httptest.NewRecorder()

	if _, ok := Request[sampleRequest](w, r); ok {
		t.Fatal("expected failure")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRequest_FieldErrorsUseJSONNames(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email","quantity":-1}`))
	w := httptest.NewRecorder()

	if _, ok := Request[sampleRequest](w, r); ok {
		t.Fatal("expected failure")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body.Fields["email"]; !ok {
		t.Errorf("expected email field error, got %v", body.Fields)
	}
	if _, ok := body.Fields["quantity"]; !ok {
		t.Errorf("expected quantity field error, got %v", body.Fields)
	}
}
