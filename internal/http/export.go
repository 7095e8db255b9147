package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/report"
	"tally/internal/view"
)

func (s *Server) handleExportText(w http.ResponseWriter, r *http.Request) {
	_, totals, label := s.reportInputs()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report.txt"`)
	_, _ = w.Write([]byte(report.RenderText(totals, label)))
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	txs, totals, label := s.reportInputs()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
	if err := report.WriteXLSX(w, totals, txs, label); err != nil {
		slog.ErrorContext(r.Context(), "XLSX export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
	}
}

func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.exporter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<div class="error">Google Sheets export is not configured</div>`))
		return
	}

	_, totals, label := s.reportInputs()
	ref, err := s.exporter.ExportTotals(r.Context(), totals, label)
	if err != nil {
		slog.ErrorContext(r.Context(), "Sheets export failed", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<div class="error">Sheets export failed</div>`))
		return
	}
	fmt.Fprintf(w, `<div class="status">Exported to %s</div>`, template.HTMLEscapeString(ref))
}

// reportInputs builds the report over the month-filtered set; exports
// honor the month selection but ignore the category filter, same as
// the overview.
func (s *Server) reportInputs() ([]core.Transaction, report.Totals, string) {
	f := s.led.Filter()
	txs := view.Filter(s.led.Transactions(), core.FilterState{Month: f.Month})
	return txs, report.Aggregate(txs), monthLabel(f)
}
