package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var ErrNotFound = errors.New("not found")

func (s *Store) InsertDispatch(ctx context.Context, r DispatchRecord) error {
	if r.WarningsJSON == "" || !json.Valid([]byte(r.WarningsJSON)) {
		r.WarningsJSON = "[]"
	}
	q := s.sql.Insert("dispatch_audit").
		Columns("event_id", "agent", "provider", "language", "message", "response", "encrypted", "warnings_json", "latency_ms").
		Values(r.EventID, r.Agent, r.Provider, r.Language, r.Message, r.Response, r.Encrypted, r.WarningsJSON, r.LatencyMS).
		Suffix("ON CONFLICT(event_id) DO NOTHING")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build dispatch insert query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert dispatch: %w", err)
	}
	return nil
}

func (s *Store) GetDispatchByEventID(ctx context.Context, eventID string) (DispatchRecord, error) {
	q := s.sql.Select("id", "event_id", "agent", "provider", "language", "message", "response", "encrypted", "warnings_json", "latency_ms", "created_at").
		From("dispatch_audit").
		Where(sq.Eq{"event_id": eventID})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return DispatchRecord{}, fmt.Errorf("build dispatch by event id query: %w", err)
	}

	var r DispatchRecord
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&r.ID,
		&r.EventID,
		&r.Agent,
		&r.Provider,
		&r.Language,
		&r.Message,
		&r.Response,
		&r.Encrypted,
		&r.WarningsJSON,
		&r.LatencyMS,
		&r.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DispatchRecord{}, ErrNotFound
		}
		return DispatchRecord{}, fmt.Errorf("get dispatch by event id: %w", err)
	}
	return r, nil
}

func (s *Store) ListRecentDispatches(ctx context.Context, agent string, limit uint64) ([]DispatchRecord, error) {
	if limit == 0 {
		limit = 50
	}
	q := s.sql.Select("id", "event_id", "agent", "provider", "language", "message", "response", "encrypted", "warnings_json", "latency_ms", "created_at").
		From("dispatch_audit").
		OrderBy("created_at DESC").
		Limit(limit)
	if agent != "" {
		q = q.Where(sq.Eq{"agent": agent})
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list dispatches query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list dispatches: %w", err)
	}
	defer rows.Close()

	out := make([]DispatchRecord, 0)
	for rows.Next() {
		var r DispatchRecord
		if err := rows.Scan(
			&r.ID,
			&r.EventID,
			&r.Agent,
			&r.Provider,
			&r.Language,
			&r.Message,
			&r.Response,
			&r.Encrypted,
			&r.WarningsJSON,
			&r.LatencyMS,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dispatch row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dispatch rows: %w", err)
	}
	return out, nil
}

func (s *Store) ProviderStats(ctx context.Context) ([]ProviderStat, error) {
	q := s.sql.Select("provider", "COUNT(*)").
		From("dispatch_audit").
		GroupBy("provider").
		OrderBy("COUNT(*) DESC")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build provider stats query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("provider stats: %w", err)
	}
	defer rows.Close()

	out := make([]ProviderStat, 0)
	for rows.Next() {
		var st ProviderStat
		if err := rows.Scan(&st.Provider, &st.Dispatches); err != nil {
			return nil, fmt.Errorf("scan provider stat: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate provider stats: %w", err)
	}
	return out, nil
}

func (s *Store) AgentStats(ctx context.Context) ([]AgentStat, error) {
	q := s.sql.Select("agent", "COUNT(*)").
		From("dispatch_audit").
		GroupBy("agent").
		OrderBy("COUNT(*) DESC")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build agent stats query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("agent stats: %w", err)
	}
	defer rows.Close()

	out := make([]AgentStat, 0)
	for rows.Next() {
		var st AgentStat
		if err := rows.Scan(&st.Agent, &st.Dispatches); err != nil {
			return nil, fmt.Errorf("scan agent stat: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agent stats: %w", err)
	}
	return out, nil
}
