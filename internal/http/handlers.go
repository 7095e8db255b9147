package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/picker"
	"tally/internal/report"
	"tally/internal/view"
)

// txRow is one rendered transaction line. Index addresses the row in
// the full transaction set so reassignment works under any filter.
type txRow struct {
	Index       int
	Date        string
	Amount      float64
	Description string
	Category    string
}

type transactionsView struct {
	Rows       []txRow
	Page       view.Page
	Months     []string
	Categories []string
	Filter     core.FilterState
	ShowTable  bool
}

type overviewView struct {
	Rows       []core.CategoryTotal
	GrandTotal float64
	Summary    core.Summary
	MonthLabel string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	txs := s.led.Transactions()
	data := struct {
		RuleText   string
		Months     []string
		Categories []string
		Filter     core.FilterState
		ShowTable  bool
		HasData    bool
	}{
		RuleText:   s.led.RuleText(),
		Months:     view.Months(txs),
		Categories: view.Categories(txs),
		Filter:     s.led.Filter(),
		ShowTable:  s.led.ShowTable(),
		HasData:    len(txs) > 0,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger := applog.FromContext(r.Context())
	file, _, err := r.FormFile("file")
	if err != nil {
		logger.ErrorContext(r.Context(), "Upload form error", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">No CSV file in request</div>`))
		return
	}
	defer file.Close()

	res, err := s.led.LoadCSV(r.Context(), file, s.cols)
	if err != nil {
		logger.ErrorContext(r.Context(), "CSV load error", "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Could not read CSV: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	logger.InfoContext(r.Context(), "Statement loaded",
		applog.NewFields().WithOperation("upload").WithIngest(len(res.Transactions), res.Dropped).ToSlice()...)

	s.overviewCache.Purge()
	w.Header().Set("HX-Trigger", "ledger-updated")
	fmt.Fprintf(w, `<div class="status">Loaded %d transactions (%d rows dropped)</div>`,
		len(res.Transactions), res.Dropped)
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid form</div>`))
		return
	}

	text := sanitizeInput(r.Form.Get("rules"))
	count := s.led.SetRules(r.Context(), text)

	s.overviewCache.Purge()
	w.Header().Set("HX-Trigger", "ledger-updated")
	fmt.Fprintf(w, `<div class="status">%d rules active</div>`, count)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid form</div>`))
		return
	}

	switch {
	case r.Form.Has("page"):
		if p, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("page"))); err == nil {
			s.led.SetPage(p)
		}
	case r.Form.Has("show"):
		s.led.SetShowTable(r.Context(), r.Form.Get("show") == "true")
	default:
		month := sanitizeInput(r.Form.Get("month"))
		category := sanitizeInput(r.Form.Get("category"))
		s.led.SetFilter(r.Context(), month, category)
	}

	s.renderTransactions(w, r)
}

func (s *Server) handleReassign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid form</div>`))
		return
	}

	index, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("index")))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid transaction index</div>`))
		return
	}
	category := sanitizeInput(r.Form.Get("category"))

	if err := s.led.Reassign(r.Context(), index, category); err != nil {
		slog.ErrorContext(r.Context(), "Reassign error", "error", err, "index", index)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">No such transaction</div>`))
		return
	}

	s.overviewCache.Purge()
	w.Header().Set("HX-Trigger", "ledger-updated")
	s.renderTransactions(w, r)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if p := strings.TrimSpace(r.URL.Query().Get("page")); p != "" {
		if page, err := strconv.Atoi(p); err == nil {
			s.led.SetPage(page)
		}
	}
	s.renderTransactions(w, r)
}

func (s *Server) renderTransactions(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	all := s.led.Transactions()
	matched, indices := s.led.Filtered()
	f := s.led.Filter()
	pg := view.Paginate(len(matched), f.Page)
	// Paginate may clamp the requested page; keep the session in step.
	if pg.Number != f.Page {
		s.led.SetPage(pg.Number)
	}

	rows := make([]txRow, 0, len(pg.Items))
	for _, i := range pg.Items {
		tx := matched[i]
		rows = append(rows, txRow{
			Index:       indices[i],
			Date:        tx.RawDate,
			Amount:      tx.Amount,
			Description: tx.Description,
			Category:    tx.Category,
		})
	}

	data := transactionsView{
		Rows:       rows,
		Page:       pg,
		Months:     view.Months(all),
		Categories: view.Categories(all),
		Filter:     f,
		ShowTable:  s.led.ShowTable(),
	}
	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Transactions template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	f := s.led.Filter()
	key := "month:" + f.Month
	data, ok := s.overviewCache.Get(key)
	if !ok {
		data = s.buildOverview(f)
		s.overviewCache.Set(key, data)
	}

	if err := s.templates.ExecuteTemplate(w, "overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Overview template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// buildOverview aggregates under the month filter only; the category
// filter narrows the table, not the chart.
func (s *Server) buildOverview(f core.FilterState) overviewView {
	txs := view.Filter(s.led.Transactions(), core.FilterState{Month: f.Month})
	totals := report.Aggregate(txs)
	return overviewView{
		Rows:       totals.Rows,
		GrandTotal: totals.GrandTotal,
		Summary:    report.Summarize(txs),
		MonthLabel: monthLabel(f),
	}
}

func (s *Server) handlePicker(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	q := sanitizeInput(r.URL.Query().Get("q"))
	page := 1
	if p, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page"))); err == nil {
		page = p
	}
	index := strings.TrimSpace(r.URL.Query().Get("index"))

	res := picker.Search(s.categoryNames(), q, page)
	data := struct {
		picker.Result
		Query string
		Index string
	}{Result: res, Query: q, Index: index}

	if err := s.templates.ExecuteTemplate(w, "picker.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Picker template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// categoryNames merges categories seen in transactions with those the
// rule list can still assign, so the picker offers both.
func (s *Server) categoryNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range view.Categories(s.led.Transactions()) {
		if !seen[c] {
			seen[c] = true
			names = append(names, c)
		}
	}
	for _, rule := range s.led.Rules() {
		if !seen[rule.Category] {
			seen[rule.Category] = true
			names = append(names, rule.Category)
		}
	}
	sort.Strings(names)
	return names
}
