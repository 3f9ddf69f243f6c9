package agentapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/agent/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Human != "배송 언제 오나요" {
			t.Errorf("unexpected human text: %q", req.Human)
		}

		_ = json.NewEncoder(w).Encode(Response{
			Text:            "내일 도착 예정입니다.",
			GuardrailResult: "PASS",
			Intent:          "QNA",
			RefURLs:         []string{"https://kb.example.com/shipping"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Ask(context.Background(), Request{
		UserID:    "u1",
		SessionID: "s1",
		Human:     "배송 언제 오나요",
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got.Text != "내일 도착 예정입니다." || got.Intent != "QNA" {
		t.Fatalf("unexpected response: %+v", got)
	}
	if len(got.RefURLs) != 1 {
		t.Fatalf("unexpected refs: %v", got.RefURLs)
	}
}

func TestClient_FallbackOnStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	req := Request{UserID: "u1", SessionID: "s1", Human: "hi"}
	got, err := c.Ask(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got.Text != FallbackText {
		t.Fatalf("expected fallback text, got %q", got.Text)
	}
	if got.GuardrailResult != GuardrailFail || got.Intent != IntentError {
		t.Fatalf("expected FAIL/ERROR, got %+v", got)
	}
	if got.UserID != "u1" || got.SessionID != "s1" {
		t.Fatalf("fallback must echo identifiers, got %+v", got)
	}
}

func TestClient_FallbackOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // server is down before the call

	c := NewClient(srv.URL)
	got, err := c.Ask(context.Background(), Request{Human: "hi"})
	if err == nil {
		t.Fatal("expected network error")
	}
	if got.Text != FallbackText {
		t.Fatalf("expected fallback text, got %q", got.Text)
	}
}

func TestClient_FallbackOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Ask(context.Background(), Request{Human: "hi"})
	if err == nil {
		t.Fatal("expected decode error")
	}
	if got.Intent != IntentError {
		t.Fatalf("expected ERROR intent, got %+v", got)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(Response{Text: "late"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithTimeout(10*time.Millisecond))
	_, err := c.Ask(context.Background(), Request{Human: "hi"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}
