// Package audit persists an append-only trail of tool invocations.
// All operations are append-only; no updates or deletes are supported.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/kairos/internal/infra/eventbus"
	"github.com/matiasleandrokruk/kairos/pkg/uuid"
)

// Service provides invocation audit logging.
type Service struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewService creates a new audit service on db.
func NewService(db *sql.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log}
}

// Log appends one invocation record. This is the ONLY way to create audit
// entries — no updates, no deletes.
func (s *Service) Log(ctx context.Context, inv *Invocation) error {
	params := inv.Params
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tool_invocation (id, tool, actor, params, outcome, detail, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		inv.ID,
		inv.Tool,
		inv.Actor,
		string(params),
		string(inv.Outcome),
		inv.Detail,
		inv.DurationMS,
		inv.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// ListRecent returns up to limit invocation records, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Invocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tool, actor, params, outcome, detail, duration_ms, created_at
		FROM tool_invocation
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Invocation, 0, limit)
	for rows.Next() {
		var (
			inv        Invocation
			paramsRaw  string
			outcome    string
			createdRaw string
		)
		if scanErr := rows.Scan(
			&inv.ID, &inv.Tool, &inv.Actor, &paramsRaw,
			&outcome, &inv.Detail, &inv.DurationMS, &createdRaw,
		); scanErr != nil {
			return nil, scanErr
		}
		inv.Params = json.RawMessage(paramsRaw)
		inv.Outcome = Outcome(outcome)
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdRaw); parseErr == nil {
			inv.CreatedAt = ts
		}
		out = append(out, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Start consumes TopicToolInvoked events from bus and persists them until ctx
// is cancelled. Intended to run as a goroutine; write failures are logged and
// skipped, never propagated to the tool call that produced the event.
func (s *Service) Start(ctx context.Context, bus eventbus.EventBus) {
	events := bus.Subscribe(TopicToolInvoked)
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-events:
			inv, ok := evt.Payload.(*Invocation)
			if !ok {
				s.log.Warn().Str("topic", evt.Topic).Msg("audit: dropping event with unexpected payload type")
				continue
			}
			if err := s.Log(ctx, inv); err != nil {
				s.log.Error().Err(err).Str("tool", inv.Tool).Msg("audit: failed to persist invocation")
			}
		}
	}
}

// NewInvocation builds a record for one completed tool call.
func NewInvocation(toolName, actor string, params json.RawMessage, callErr error, started time.Time, now func() time.Time) *Invocation {
	inv := &Invocation{
		ID:         uuid.NewV4().String(),
		Tool:       toolName,
		Actor:      actor,
		Params:     params,
		Outcome:    OutcomeSuccess,
		DurationMS: now().Sub(started).Milliseconds(),
		CreatedAt:  now(),
	}
	if callErr != nil {
		inv.Outcome = OutcomeError
		inv.Detail = callErr.Error()
	}
	return inv
}
