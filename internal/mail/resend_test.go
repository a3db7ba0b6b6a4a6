package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend(t *testing.T) {
	var got sendRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "noreply@example.com")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.apiURL = srv.URL

	if err := client.Send(context.Background(), "jane@example.com", "Activate Your Account", "click the link"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if got.From != "noreply@example.com" || len(got.To) != 1 || got.To[0] != "jane@example.com" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.Subject != "Activate Your Account" || got.Text != "click the link" {
		t.Fatalf("unexpected subject/body: %+v", got)
	}
}

func TestSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid sender"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "noreply@example.com")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.apiURL = srv.URL

	if err := client.Send(context.Background(), "jane@example.com", "subject", "body"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "noreply@example.com"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for missing sender")
	}
}
