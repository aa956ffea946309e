package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Events implements EventRepo and TransitionRepo on SQLite. Statements
// are built with ent's SQL builder.
type Events struct {
	db  *sql.DB
	b   *entsql.DialectBuilder
	seq *sequenceCounter
	now func() time.Time
}

var (
	_ EventRepo      = (*Events)(nil)
	_ TransitionRepo = (*Events)(nil)
)

var llmColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

var transitionColumns = []string{
	"id", "sequence", "timestamp", "session_id", "event", "from_state", "to_state", "user_id",
}

func (r *Events) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *Events) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.b.Insert(tableLLMRequests).
		Columns(llmColumns[1:]...).
		Values(
			seqNum, r.clock().UnixMilli(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns LLM events newest first.
func (r *Events) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := r.b.Select(llmColumns...).From(r.b.Table(tableLLMRequests))
	applyOpts(sel, opts)
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// GetLLMEvent returns one event by id, or nil if it does not exist.
func (r *Events) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	query, args := r.b.Select(llmColumns...).
		From(r.b.Table(tableLLMRequests)).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// LLMUsageByPurpose sums calls, failures and tokens per purpose.
func (r *Events) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	query, args := r.b.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		"SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) AS failures",
		entsql.As(entsql.Sum("input_tokens"), "input"),
		entsql.As(entsql.Sum("output_tokens"), "output"),
		entsql.As(entsql.Avg("latency_ms"), "latency"),
	).
		From(r.b.Table(tableLLMRequests)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		var avg float64
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.Failures, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.AvgLatencyMs = int(avg)
		out = append(out, u)
	}
	return out, rows.Err()
}

// LLMUsageByModel sums calls and tokens per model.
func (r *Events) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	query, args := r.b.Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("input_tokens"), "input"),
		entsql.As(entsql.Sum("output_tokens"), "output"),
	).
		From(r.b.Table(tableLLMRequests)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Events) AppendTransition(ctx context.Context, data TransitionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.b.Insert(tableTransitions).
		Columns(transitionColumns[1:]...).
		Values(seqNum, r.clock().UnixMilli(), data.SessionID, data.Event, data.From, data.To, data.UserID).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save transition event: %w", err)
	}
	return nil
}

// QueryTransitions returns transition events newest first. An empty
// sessionID matches every session.
func (r *Events) QueryTransitions(ctx context.Context, sessionID string, opts QueryOpts) ([]TransitionEvent, error) {
	sel := r.b.Select(transitionColumns...).From(r.b.Table(tableTransitions))
	applyOpts(sel, opts)
	if sessionID != "" {
		sel.Where(entsql.EQ("session_id", sessionID))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var out []TransitionEvent
	for rows.Next() {
		var e TransitionEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Event, &e.From, &e.To, &e.UserID); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMRequestEvent, error) {
	var e LLMRequestEvent
	var ts int64
	err := row.Scan(
		&e.ID, &e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	e.Timestamp = time.UnixMilli(ts).UTC()
	return &e, nil
}
