// Package ledger owns the application state: the current transaction set,
// the rule list, and the filter state. One owner with serialized access;
// every mutation re-runs the categorize pass over the whole set so
// derived views stay consistent.
//
// Persistence and event publishing are best-effort collaborators: a
// failing store or broker is logged and ignored, never surfaced to the
// pipeline.
package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"tally/internal/core"
	"tally/internal/ingest"
	"tally/internal/rules"
	"tally/internal/store"
	"tally/internal/view"
)

// Event names published on state changes.
const (
	EventCSVLoaded     = "ledger.csv_loaded"
	EventRulesUpdated  = "ledger.rules_updated"
	EventSnapshotSaved = "ledger.snapshot_saved"
)

// EventPublisher pushes ledger lifecycle events to a broker. Implementations
// must be safe for concurrent use; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// ErrBadIndex is returned for a manual reassignment outside the set.
var ErrBadIndex = errors.New("transaction index out of range")

type Ledger struct {
	mu       sync.Mutex
	txs      []core.Transaction
	ruleText string
	rules    []core.Rule
	filter   core.FilterState
	showAll  bool

	store *store.Store // may be nil
	pub   EventPublisher
}

func New(st *store.Store, pub EventPublisher) *Ledger {
	return &Ledger{
		filter:  core.FilterState{Page: 1},
		showAll: true,
		store:   st,
		pub:     pub,
	}
}

// Restore rehydrates rule text, filters, visibility, and the last
// transaction snapshot from the store. Missing or prior-version keys
// fall back to defaults; nothing here is fatal.
func (l *Ledger) Restore(ctx context.Context) {
	if l.store == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if text, err := l.store.Get(ctx, store.KeyRules); err == nil {
		l.ruleText = text
		l.rules = rules.Parse(text)
	}
	if m, err := l.store.Get(ctx, store.KeyMonthFilter); err == nil {
		l.filter.Month = m
	}
	if c, err := l.store.Get(ctx, store.KeyCatFilter); err == nil {
		l.filter.Category = c
	}
	if v, err := l.store.Get(ctx, store.KeyShowTable); err == nil {
		l.showAll = v == "true"
	}
	if txs, err := l.store.LoadLastSnapshot(ctx); err == nil {
		l.txs = txs
		rules.Categorize(l.txs, l.rules)
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "Snapshot restore failed", "error", err)
	}
	l.filter.Page = 1
}

// LoadCSV replaces the transaction set wholesale from a CSV stream,
// categorizes it, snapshots it, and announces the load.
func (l *Ledger) LoadCSV(ctx context.Context, r io.Reader, cols ingest.Columns) (ingest.Result, error) {
	res, err := ingest.Load(r, cols)
	if err != nil {
		return ingest.Result{}, err
	}

	l.mu.Lock()
	l.txs = res.Transactions
	rules.Categorize(l.txs, l.rules)
	l.filter.Page = 1
	l.mu.Unlock()

	l.persistSnapshot(ctx)
	l.publish(ctx, EventCSVLoaded, map[string]any{
		"transactions": len(res.Transactions),
		"dropped":      res.Dropped,
	})
	return res, nil
}

// SetRules replaces the rule list from rule text and re-runs
// categorization over the whole set. Returns how many rules survived
// parsing.
func (l *Ledger) SetRules(ctx context.Context, text string) int {
	parsed := rules.Parse(text)

	l.mu.Lock()
	l.ruleText = text
	l.rules = parsed
	rules.Categorize(l.txs, l.rules)
	l.mu.Unlock()

	l.persist(ctx, store.KeyRules, text)
	l.persistSnapshot(ctx)
	l.publish(ctx, EventRulesUpdated, map[string]any{"rules": len(parsed)})
	return len(parsed)
}

// Reassign manually sets one transaction's category. The label lasts
// until the next full categorization pass; every pass overwrites
// manual labels.
func (l *Ledger) Reassign(ctx context.Context, index int, category string) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.txs) {
		l.mu.Unlock()
		return ErrBadIndex
	}
	l.txs[index].Category = core.Transaction{Category: category}.CategoryOrDefault()
	l.mu.Unlock()

	l.persistSnapshot(ctx)
	return nil
}

// SetFilter updates month/category selection and resets to page 1;
// any filter change invalidates the current page position.
func (l *Ledger) SetFilter(ctx context.Context, month, category string) {
	l.mu.Lock()
	l.filter.Month = month
	l.filter.Category = category
	l.filter.Page = 1
	l.mu.Unlock()

	l.persist(ctx, store.KeyMonthFilter, month)
	l.persist(ctx, store.KeyCatFilter, category)
}

func (l *Ledger) SetPage(page int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if page < 1 {
		page = 1
	}
	l.filter.Page = page
}

func (l *Ledger) SetShowTable(ctx context.Context, show bool) {
	l.mu.Lock()
	l.showAll = show
	l.mu.Unlock()
	l.persist(ctx, store.KeyShowTable, strconv.FormatBool(show))
}

func (l *Ledger) ShowTable() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.showAll
}

// Transactions returns a copy of the full set.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

func (l *Ledger) Filter() core.FilterState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

func (l *Ledger) RuleText() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ruleText
}

func (l *Ledger) Rules() []core.Rule {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Filtered applies the current filter state and returns the matching
// transactions with their indices into the full set, so manual
// reassignment can address a row regardless of the active filter.
func (l *Ledger) Filtered() ([]core.Transaction, []int) {
	l.mu.Lock()
	f := l.filter
	txs := make([]core.Transaction, len(l.txs))
	copy(txs, l.txs)
	l.mu.Unlock()

	matched := view.Filter(txs, f)
	// Filter preserves order, so original positions are recovered by a
	// single aligned pass.
	indices := make([]int, 0, len(matched))
	pos := 0
	for i, tx := range txs {
		if pos < len(matched) && tx == matched[pos] {
			indices = append(indices, i)
			pos++
		}
	}
	return matched, indices
}

func (l *Ledger) persist(ctx context.Context, key, value string) {
	if l.store == nil {
		return
	}
	if err := l.store.Set(ctx, key, value); err != nil {
		slog.WarnContext(ctx, "State persist failed", "key", key, "error", err)
	}
}

func (l *Ledger) persistSnapshot(ctx context.Context) {
	if l.store == nil {
		return
	}
	id, err := l.store.SaveSnapshot(ctx, l.Transactions())
	if err != nil {
		slog.WarnContext(ctx, "Snapshot persist failed", "error", err)
		return
	}
	l.publish(ctx, EventSnapshotSaved, map[string]any{"snapshot_id": id})
}

func (l *Ledger) publish(ctx context.Context, event string, payload any) {
	if l.pub == nil {
		return
	}
	if err := l.pub.Publish(ctx, event, payload); err != nil {
		slog.WarnContext(ctx, "Event publish failed", "event", event, "error", err)
	}
}
