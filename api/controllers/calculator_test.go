package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	estimatorsvc "github.com/securewatch/backend/internal/estimator"
)

type stubEstimatorService struct {
	result estimatorsvc.Result
	err    error
}

func (s stubEstimatorService) Estimate(ctx context.Context, input estimatorsvc.Input) (estimatorsvc.Result, error) {
	return s.result, s.err
}

func TestCalculatorEstimateSuccess(t *testing.T) {
	svc := stubEstimatorService{result: estimatorsvc.Result{RecommendedCount: 4, CoveragePercent: 62.5}}
	handler := CalculatorEstimate(svc, nil)

	body := strings.NewReader(`{"area":200,"view_angle":90,"distance":10}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculator", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data estimatorsvc.Result `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RecommendedCount != 4 {
		t.Fatalf("unexpected count: %d", envelope.Data.RecommendedCount)
	}
}

func TestCalculatorEstimateRejectsBadBody(t *testing.T) {
	handler := CalculatorEstimate(stubEstimatorService{}, nil)

	body := strings.NewReader(`{"area":200,"bogus":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculator", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
