package adapthttp

import (
	"net/http"
)

func (s *Server) handleChartsSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.charts.Series())
}
