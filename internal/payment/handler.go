package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"pizzeria-be/internal/logger"
	"pizzeria-be/internal/utils"

	"go.uber.org/zap"
)

type Handler struct {
	gateway Gateway
}

func NewHandler(gateway Gateway) *Handler {
	return &Handler{gateway: gateway}
}

type authorizeRequest struct {
	Amount       float64 `json:"amount"`
	PaymentToken string  `json:"paymentToken"`
}

// Authorize validates the client-supplied payment token and returns a
// transaction id for the subsequent order submission.
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	var req authorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	auth, err := h.gateway.Authorize(r.Context(), req.Amount, req.PaymentToken)
	if err != nil {
		if errors.Is(err, ErrTokenRequired) {
			utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.FromCtx(r.Context()).Error("payment authorization failed", zap.Error(err))
		utils.WriteJSONError(w, "Payment validation failed", http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, http.StatusOK, auth)
}
