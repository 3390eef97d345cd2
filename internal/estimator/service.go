package estimator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	pkgerrors "github.com/securewatch/backend/pkg/errors"
	"github.com/securewatch/backend/pkg/logger"
	"github.com/securewatch/backend/pkg/openai"
)

// areaPerCamera is the planning rule of thumb: one camera per 50 square
// meters of monitored floor.
const areaPerCamera = 50.0

const suggestionPrompt = "You are a CCTV planning assistant. Given the monitored " +
	"area in square meters, the camera view angle in degrees and the usable view " +
	"distance in meters, reply with a JSON object of the shape " +
	`{"suggestions": ["...", "..."]} ` +
	"containing up to five short, concrete camera placement tips for that space. " +
	"Reply with JSON only."

// Input is the estimate request.
type Input struct {
	// Area is the monitored floor area in square meters.
	Area float64 `json:"area" validate:"required,gt=0"`
	// ViewAngle is the camera's horizontal field of view in degrees.
	ViewAngle float64 `json:"view_angle" validate:"required,gt=0,lte=360"`
	// Distance is the usable view distance in meters.
	Distance float64 `json:"distance" validate:"required,gt=0"`
}

// Result is the estimate. Suggestions are present only when the AI
// enrichment succeeded.
type Result struct {
	RecommendedCount int      `json:"recommended_count"`
	CoveragePercent  float64  `json:"coverage_percent"`
	Suggestions      []string `json:"suggestions,omitempty"`
}

// Completer is the slice of the AI client the estimator needs.
type Completer interface {
	Complete(ctx context.Context, req openai.CompletionRequest) (string, error)
}

// FallbackRecorder counts estimates that went out without AI enrichment.
type FallbackRecorder interface {
	IncFallback(surface string)
}

// Service computes camera-count estimates.
type Service interface {
	Estimate(ctx context.Context, input Input) (Result, error)
}

// ServiceParams carries the estimator dependencies.
type ServiceParams struct {
	Completer Completer
	Metrics   FallbackRecorder
	Logger    *logger.Logger
}

type service struct {
	completer Completer
	metrics   FallbackRecorder
	logg      *logger.Logger
}

// NewService builds the estimator. The completer may be nil; estimates are
// then purely deterministic.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		completer: params.Completer,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// Estimate always produces the deterministic count and coverage; the AI call
// only adds placement suggestions and can never change or fail the numbers.
func (s *service) Estimate(ctx context.Context, input Input) (Result, error) {
	if err := validateInput(input); err != nil {
		return Result{}, err
	}

	result := Result{
		RecommendedCount: int(math.Ceil(input.Area / areaPerCamera)),
		CoveragePercent:  coveragePercent(input),
	}

	if s.completer == nil {
		return result, nil
	}

	suggestions, err := s.fetchSuggestions(ctx, input)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "estimator enrichment failed")
		if s.metrics != nil {
			s.metrics.IncFallback("calculator")
		}
		return result, nil
	}
	result.Suggestions = suggestions
	return result, nil
}

// coveragePercent treats each camera as covering a circular sector of
// (angle/360)·π·distance² and reports how much of the area the recommended
// count covers, capped at 100.
func coveragePercent(input Input) float64 {
	sector := input.ViewAngle / 360 * math.Pi * input.Distance * input.Distance
	count := math.Ceil(input.Area / areaPerCamera)
	percent := sector * count / input.Area * 100
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return math.Round(percent*100) / 100
}

func (s *service) fetchSuggestions(ctx context.Context, input Input) ([]string, error) {
	question := fmt.Sprintf("area: %.1f m2, view angle: %.1f degrees, view distance: %.1f m", input.Area, input.ViewAngle, input.Distance)
	raw, err := s.completer.Complete(ctx, openai.CompletionRequest{
		JSONMode: true,
		Messages: []openai.Message{
			{Role: "system", Content: suggestionPrompt},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}

	suggestions := make([]string, 0, len(parsed.Suggestions))
	for _, sgg := range parsed.Suggestions {
		sgg = strings.TrimSpace(sgg)
		if sgg != "" {
			suggestions = append(suggestions, sgg)
		}
		if len(suggestions) == 5 {
			break
		}
	}
	return suggestions, nil
}

func validateInput(input Input) error {
	switch {
	case input.Area <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "area must be positive")
	case input.ViewAngle <= 0 || input.ViewAngle > 360:
		return pkgerrors.New(pkgerrors.CodeValidation, "view angle must be between 0 and 360 degrees")
	case input.Distance <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "distance must be positive")
	}
	return nil
}
