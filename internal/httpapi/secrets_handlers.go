package httpapi

import (
	"encoding/json"
	"net/http"

	"recruitin-engine/internal/secrets"
)

type SecretsHandler struct{}

type setAPIKeyReq struct {
	APIKey string `json:"api_key"`
}

func (h SecretsHandler) SetClaudeKey(w http.ResponseWriter, r *http.Request) {
	var req setAPIKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := secrets.SetAPIKey(req.APIKey); err != nil {
		http.Error(w, "failed to store api key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteClaudeKey(w http.ResponseWriter, r *http.Request) {
	if err := secrets.DeleteAPIKey(); err != nil {
		http.Error(w, "failed to delete api key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
