package db

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type CourseRecord struct {
	ID            int64
	BaseURL       string
	CourseName    string
	CtaLink       string
	Price         string
	PdpPrice      string
	CtaStatus     string
	IsBroken      int64
	PriceMismatch int64
	Viewport      string
	CreatedAt     time.Time
}

const createCourseRecord = `
INSERT INTO courses (base_url, course_name, cta_link, price, pdp_price, cta_status, is_broken, price_mismatch, viewport)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateCourseRecordParams struct {
	BaseURL       string
	CourseName    string
	CtaLink       string
	Price         string
	PdpPrice      string
	CtaStatus     string
	IsBroken      int64
	PriceMismatch int64
	Viewport      string
}

func (q *Queries) CreateCourseRecord(ctx context.Context, arg CreateCourseRecordParams) error {
	_, err := q.db.ExecContext(ctx, createCourseRecord,
		arg.BaseURL,
		arg.CourseName,
		arg.CtaLink,
		arg.Price,
		arg.PdpPrice,
		arg.CtaStatus,
		arg.IsBroken,
		arg.PriceMismatch,
		arg.Viewport,
	)
	return err
}

const getCourseRecordID = `
SELECT id FROM courses
WHERE course_name = ? AND cta_link = ? AND viewport = ?
LIMIT 1
`

type GetCourseRecordIDParams struct {
	CourseName string
	CtaLink    string
	Viewport   string
}

func (q *Queries) GetCourseRecordID(ctx context.Context, arg GetCourseRecordIDParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, getCourseRecordID, arg.CourseName, arg.CtaLink, arg.Viewport)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listCourseRecords = `
SELECT id, base_url, course_name, cta_link, price, pdp_price, cta_status, is_broken, price_mismatch, viewport, created_at
FROM courses
ORDER BY id
`

func (q *Queries) ListCourseRecords(ctx context.Context) ([]CourseRecord, error) {
	rows, err := q.db.QueryContext(ctx, listCourseRecords)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CourseRecord
	for rows.Next() {
		var r CourseRecord
		err := rows.Scan(
			&r.ID,
			&r.BaseURL,
			&r.CourseName,
			&r.CtaLink,
			&r.Price,
			&r.PdpPrice,
			&r.CtaStatus,
			&r.IsBroken,
			&r.PriceMismatch,
			&r.Viewport,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const countRecordsByViewport = `
SELECT viewport, COUNT(*) FROM courses GROUP BY viewport
`

type ViewportCount struct {
	Viewport string
	Count    int64
}

func (q *Queries) CountRecordsByViewport(ctx context.Context) ([]ViewportCount, error) {
	rows, err := q.db.QueryContext(ctx, countRecordsByViewport)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ViewportCount
	for rows.Next() {
		var c ViewportCount
		if err := rows.Scan(&c.Viewport, &c.Count); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
