package handlers

import "net/http"

// GetInventoryMetricsHandler returns the inventory summary as JSON.
func GetInventoryMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := productService.Metrics(r.Context())
	if err != nil {
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, m); err != nil {
		logger.Error().Err(err).Msg("failed to write metrics response")
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResult{Status: "ok"})
}
