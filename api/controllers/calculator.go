package controllers

import (
	"net/http"

	"github.com/securewatch/backend/api/responses"
	"github.com/securewatch/backend/api/validators"
	estimatorsvc "github.com/securewatch/backend/internal/estimator"
	"github.com/securewatch/backend/pkg/logger"
)

// CalculatorEstimate answers the camera-count calculator.
func CalculatorEstimate(svc estimatorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload estimatorsvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Estimate(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
