package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type runRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var runFields = []string{
	"id", "sequence", "timestamp", "run_id", "session_id", "industry", "occupation",
	"experience_years", "skills", "answers", "level", "course", "asset_path",
	"narrative", "success", "error_kind", "error_message", "duration_ms",
}

func (r *runRepo) AppendRun(ctx context.Context, data RunData) error {
	if data.RunID == "" {
		return errors.New("save run: empty run id")
	}

	skills, err := json.Marshal(nonNil(data.Skills))
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	answers := data.Answers
	if answers == nil {
		answers = []AnswerEntry{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := builder().Insert(runsTable).
		Columns(runFields[1:]...).
		Values(
			seqNum, time.Now().UTC(), data.RunID, data.SessionID, data.Industry, data.Occupation,
			data.ExperienceYears, string(skills), string(answersJSON), data.Level, data.Course, data.AssetPath,
			data.Narrative, data.Success, data.ErrorKind, data.ErrorMessage, data.DurationMs,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save run %s: %w", data.RunID, err)
	}
	return nil
}

func (r *runRepo) ListRuns(ctx context.Context, opts QueryOpts) ([]RunRecord, error) {
	sel := builder().Select(runFields...).
		From(entsql.Table(runsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)

	q, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *runRepo) GetRun(ctx context.Context, id int) (*RunRecord, error) {
	q, args := builder().Select(runFields...).
		From(entsql.Table(runsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanRun(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %d: %w", id, err)
	}
	return rec, nil
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var (
		rec     RunRecord
		skills  string
		answers string
	)
	err := row.Scan(
		&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.RunID, &rec.SessionID, &rec.Industry, &rec.Occupation,
		&rec.ExperienceYears, &skills, &answers, &rec.Level, &rec.Course, &rec.AssetPath,
		&rec.Narrative, &rec.Success, &rec.ErrorKind, &rec.ErrorMessage, &rec.DurationMs,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(skills), &rec.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return &rec, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
