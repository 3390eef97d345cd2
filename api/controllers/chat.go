package controllers

import (
	"net/http"

	"github.com/securewatch/backend/api/responses"
	"github.com/securewatch/backend/api/validators"
	chatsvc "github.com/securewatch/backend/internal/chat"
	"github.com/securewatch/backend/pkg/logger"
	"github.com/securewatch/backend/pkg/metrics"
)

// ChatAsk forwards a storefront question to the assistant.
func ChatAsk(svc chatsvc.Service, m *metrics.HTTPMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireBrowserSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload chatsvc.AskInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Ask(r.Context(), sessionID, payload.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if result.Fallback {
			m.IncFallback("chat")
		}
		responses.WriteSuccess(w, result)
	}
}

// ChatHistory returns the session's exchange log.
func ChatHistory(svc chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireBrowserSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.History(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"messages": history})
	}
}
