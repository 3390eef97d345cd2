package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	chatsvc "github.com/securewatch/backend/internal/chat"
	"github.com/securewatch/backend/pkg/metrics"
)

type stubChatService struct {
	result  chatsvc.AskResult
	history []chatsvc.ExchangeDTO
	err     error

	gotSession string
	gotMessage string
}

func (s *stubChatService) Ask(ctx context.Context, sessionID, message string) (chatsvc.AskResult, error) {
	s.gotSession = sessionID
	s.gotMessage = message
	return s.result, s.err
}

func (s *stubChatService) History(ctx context.Context, sessionID string) ([]chatsvc.ExchangeDTO, error) {
	return s.history, s.err
}

func TestChatAskSuccess(t *testing.T) {
	svc := &stubChatService{result: chatsvc.AskResult{Response: "We stock 4K dome cameras."}}
	handler := ChatAsk(svc, nil, nil)

	body := strings.NewReader(`{"message":"do you have 4k cameras?"}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/chat", body), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotSession != "sess-1" {
		t.Fatalf("unexpected session: %q", svc.gotSession)
	}
	if svc.gotMessage != "do you have 4k cameras?" {
		t.Fatalf("unexpected message: %q", svc.gotMessage)
	}

	var envelope struct {
		Data chatsvc.AskResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Response != "We stock 4K dome cameras." {
		t.Fatalf("unexpected response: %q", envelope.Data.Response)
	}
}

func TestChatAskFallbackCountsMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)
	svc := &stubChatService{result: chatsvc.AskResult{Response: "sorry", Fallback: true}}
	handler := ChatAsk(svc, m, nil)

	body := strings.NewReader(`{"message":"hello"}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/chat", body), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := fallbackCount(t, reg, "chat"); got != 1 {
		t.Fatalf("expected 1 chat fallback, got %v", got)
	}
}

func fallbackCount(t *testing.T, reg *prometheus.Registry, surface string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() != "assistant_fallback_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelValue(metric, "surface") == surface {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelValue(metric *dto.Metric, name string) string {
	for _, pair := range metric.GetLabel() {
		if pair.GetName() == name {
			return pair.GetValue()
		}
	}
	return ""
}

func TestChatAskMissingMessage(t *testing.T) {
	handler := ChatAsk(&stubChatService{}, nil, nil)

	body := strings.NewReader(`{}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/chat", body), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestChatAskMissingSession(t *testing.T) {
	handler := ChatAsk(&stubChatService{}, nil, nil)

	body := strings.NewReader(`{"message":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestChatHistorySuccess(t *testing.T) {
	svc := &stubChatService{history: []chatsvc.ExchangeDTO{{Message: "hi", Response: "hello"}}}
	handler := ChatHistory(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/chat/history", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Messages []chatsvc.ExchangeDTO `json:"messages"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Messages) != 1 {
		t.Fatalf("expected 1 exchange, got %d", len(envelope.Data.Messages))
	}
}
