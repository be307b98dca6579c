package mockapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/infra/logging"
)

// DirectHandler is a local stand-in for the payment API's /ws/direct
// endpoint, good enough to exercise the full dispatch path offline:
// approved, declined and 3DS-redirect responses with the production
// status codes (CO, CA, PE).
type DirectHandler struct {
	Simulator Simulator
	Logger    logging.Logger
}

func (h *DirectHandler) Direct(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "unreadable request body", http.StatusBadRequest)
		return
	}

	doc, err := payload.FromJSON(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":         "ERROR",
			"status_code":    "BP-DR-1",
			"status_message": "Invalid request body",
		})
		return
	}

	key, _ := doc.Lookup("integration_key")
	if s, ok := key.(string); !ok || s == "" || s == "{integration_key}" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status":         "ERROR",
			"status_code":    "DA-1",
			"status_message": "Invalid integration key",
		})
		return
	}

	outcome := h.Simulator.Outcome(doc)
	hash := uuid.NewString()

	h.Logger.Info("mock request handled", map[string]any{
		"hash":    hash,
		"outcome": string(outcome),
		"ptp":     r.Header.Get("X-EBANX-Custom-Payment-Type-Profile"),
	})

	pay := map[string]any{"hash": hash}
	if amount, ok := doc.Lookup("payment.amount_total"); ok {
		pay["amount_total"] = amount
	}
	if currency, ok := doc.Lookup("payment.currency_code"); ok {
		pay["currency_code"] = currency
	}

	switch outcome {
	case OutcomeApproved:
		pay["status"] = "CO"
	case OutcomeDeclined:
		pay["status"] = "CA"
		pay["transaction_status"] = map[string]any{
			"acquirer":    "MOCK",
			"code":        "NOK",
			"description": "Not approved by the acquirer",
		}
	case OutcomeRedirect:
		pay["status"] = "PE"
		pay["redirect_url"] = fmt.Sprintf("http://%s/3ds/%s", r.Host, hash)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "SUCCESS",
		"payment": pay,
	})
}

// Challenge serves the page a 3DS redirect points at, so following the
// URL from a mock response lands somewhere real.
func (h *DirectHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><body><h1>3DS Challenge</h1><p>payment %s</p></body></html>", hash)
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
