package coursecheck

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"coursewatch/services/coursecheck/db"
)

// Store persists course records with identity-based deduplication. Both
// viewport passes write through the same Store concurrently.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database, qry: db.New(database)}
}

const saveAttempts = 5

// SaveBatch inserts every record whose (course_name, cta_link, viewport)
// identity is not already stored. The whole batch runs in one
// transaction and is retried when sqlite reports contention from the
// other viewport pass.
func (s *Store) SaveBatch(ctx context.Context, records []db.CreateCourseRecordParams) error {
	if len(records) == 0 {
		return nil
	}

	var err error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		var inserted int
		inserted, err = s.trySaveBatch(ctx, records)
		if err == nil {
			slog.InfoContext(ctx, "saved course records",
				"viewport", records[0].Viewport, "new", inserted, "batch", len(records))
			return nil
		}
		if !isBusy(err) {
			return err
		}
		slog.WarnContext(ctx, "database busy, retrying batch save", "attempt", attempt)
		select {
		case <-time.After(time.Millisecond * 200 * time.Duration(attempt)):
		case <-ctx.Done():
			return err
		}
	}
	return err
}

func (s *Store) trySaveBatch(ctx context.Context, records []db.CreateCourseRecordParams) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	inserted := 0
	for _, rec := range records {
		_, err := txqry.GetCourseRecordID(ctx, db.GetCourseRecordIDParams{
			CourseName: rec.CourseName,
			CtaLink:    rec.CtaLink,
			Viewport:   rec.Viewport,
		})
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}
		if err := txqry.CreateCourseRecord(ctx, rec); err != nil {
			return 0, err
		}
		inserted++
	}
	return inserted, tx.Commit()
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}

func (s *Store) Records(ctx context.Context) ([]db.CourseRecord, error) {
	return s.qry.ListCourseRecords(ctx)
}

func (s *Store) ViewportCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.qry.CountRecordsByViewport(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, row := range rows {
		counts[row.Viewport] = int(row.Count)
	}
	return counts, nil
}
