package roster

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wardwatch/wardwatch/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// =========== IPD Shift Repository ===========

type ipdShiftRepoPG struct{ pool *pgxpool.Pool }

func NewIPDShiftRepoPG(pool *pgxpool.Pool) IPDShiftRepository {
	return &ipdShiftRepoPG{pool: pool}
}

const ipdShiftCols = `id, ward_id, record_date::text, shift, hn_count, rn_count, tn_count, na_count, created_at, updated_at`

func scanIPDShift(row pgx.Row) (*IPDShift, error) {
	var s IPDShift
	err := row.Scan(&s.ID, &s.WardID, &s.RecordDate, &s.Shift, &s.HNCount, &s.RNCount, &s.TNCount, &s.NACount, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *ipdShiftRepoPG) Upsert(ctx context.Context, s *IPDShift) error {
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO ipd_daily_shifts (ward_id, record_date, shift, hn_count, rn_count, tn_count, na_count)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7)
		ON CONFLICT (ward_id, record_date, shift) DO UPDATE SET
			hn_count = EXCLUDED.hn_count,
			rn_count = EXCLUDED.rn_count,
			tn_count = EXCLUDED.tn_count,
			na_count = EXCLUDED.na_count,
			updated_at = NOW()
		RETURNING id`,
		s.WardID, s.RecordDate, s.Shift, s.HNCount, s.RNCount, s.TNCount, s.NACount,
	).Scan(&s.ID)
}

func (r *ipdShiftRepoPG) ListByDate(ctx context.Context, date string, wardID uuid.UUID) ([]*IPDShift, error) {
	query := `SELECT ` + ipdShiftCols + ` FROM ipd_daily_shifts WHERE record_date = $1::date`
	args := []interface{}{date}
	if wardID != uuid.Nil {
		args = append(args, wardID)
		query += ` AND ward_id = $2`
	}
	query += ` ORDER BY ward_id, shift`
	return r.queryShifts(ctx, query, args...)
}

func (r *ipdShiftRepoPG) ListByWardDate(ctx context.Context, wardID uuid.UUID, date string) ([]*IPDShift, error) {
	return r.queryShifts(ctx, `SELECT `+ipdShiftCols+` FROM ipd_daily_shifts
		WHERE ward_id = $1 AND record_date = $2::date ORDER BY shift`, wardID, date)
}

func (r *ipdShiftRepoPG) ListRange(ctx context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*IPDShift, error) {
	query := `SELECT ` + ipdShiftCols + ` FROM ipd_daily_shifts
		WHERE record_date BETWEEN $1::date AND $2::date`
	args := []interface{}{dateFrom, dateTo}
	if len(wardIDs) > 0 {
		args = append(args, wardIDs)
		query += ` AND ward_id = ANY($3)`
	}
	query += ` ORDER BY ward_id, record_date, shift`
	return r.queryShifts(ctx, query, args...)
}

func (r *ipdShiftRepoPG) LatestDate(ctx context.Context) (string, error) {
	var date string
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COALESCE(MAX(record_date)::text, '') FROM ipd_daily_shifts`).Scan(&date)
	return date, err
}

func (r *ipdShiftRepoPG) queryShifts(ctx context.Context, query string, args ...interface{}) ([]*IPDShift, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*IPDShift
	for rows.Next() {
		s, err := scanIPDShift(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// =========== OPD Shift Repository ===========

type opdShiftRepoPG struct{ pool *pgxpool.Pool }

func NewOPDShiftRepoPG(pool *pgxpool.Pool) OPDShiftRepository {
	return &opdShiftRepoPG{pool: pool}
}

const opdShiftCols = `id, ward_id, record_date::text, shift, rn_count, non_rn_count, patient_total, category_data, workload_score, created_at, updated_at`

func scanOPDShift(row pgx.Row) (*OPDShift, error) {
	var s OPDShift
	err := row.Scan(&s.ID, &s.WardID, &s.RecordDate, &s.Shift, &s.RNCount, &s.NonRNCount, &s.PatientTotal, &s.CategoryData, &s.WorkloadScore, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *opdShiftRepoPG) Upsert(ctx context.Context, s *OPDShift) error {
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO opd_daily_shifts (ward_id, record_date, shift, rn_count, non_rn_count, patient_total, category_data, workload_score)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ward_id, record_date, shift) DO UPDATE SET
			rn_count = EXCLUDED.rn_count,
			non_rn_count = EXCLUDED.non_rn_count,
			patient_total = EXCLUDED.patient_total,
			category_data = EXCLUDED.category_data,
			workload_score = EXCLUDED.workload_score,
			updated_at = NOW()
		RETURNING id`,
		s.WardID, s.RecordDate, s.Shift, s.RNCount, s.NonRNCount, s.PatientTotal, s.CategoryData, s.WorkloadScore,
	).Scan(&s.ID)
}

func (r *opdShiftRepoPG) ListByDate(ctx context.Context, date string, wardID uuid.UUID) ([]*OPDShift, error) {
	query := `SELECT ` + opdShiftCols + ` FROM opd_daily_shifts WHERE record_date = $1::date`
	args := []interface{}{date}
	if wardID != uuid.Nil {
		args = append(args, wardID)
		query += ` AND ward_id = $2`
	}
	query += ` ORDER BY ward_id, shift`
	return r.queryShifts(ctx, query, args...)
}

func (r *opdShiftRepoPG) ListRange(ctx context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*OPDShift, error) {
	query := `SELECT ` + opdShiftCols + ` FROM opd_daily_shifts
		WHERE record_date BETWEEN $1::date AND $2::date`
	args := []interface{}{dateFrom, dateTo}
	if len(wardIDs) > 0 {
		args = append(args, wardIDs)
		query += ` AND ward_id = ANY($3)`
	}
	query += ` ORDER BY ward_id, record_date, shift`
	return r.queryShifts(ctx, query, args...)
}

func (r *opdShiftRepoPG) LatestDate(ctx context.Context) (string, error) {
	var date string
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COALESCE(MAX(record_date)::text, '') FROM opd_daily_shifts`).Scan(&date)
	return date, err
}

func (r *opdShiftRepoPG) queryShifts(ctx context.Context, query string, args ...interface{}) ([]*OPDShift, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*OPDShift
	for rows.Next() {
		s, err := scanOPDShift(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// =========== Daily Summary Repository ===========

type summaryRepoPG struct{ pool *pgxpool.Pool }

func NewSummaryRepoPG(pool *pgxpool.Pool) SummaryRepository {
	return &summaryRepoPG{pool: pool}
}

const summaryCols = `id, ward_id, record_date::text, total_staff_day, patient_day, hppd, discharge_count, new_admission, productivity, cmi, cap_status, created_at, updated_at`

func scanSummary(row pgx.Row) (*DailySummary, error) {
	var s DailySummary
	err := row.Scan(&s.ID, &s.WardID, &s.RecordDate, &s.TotalStaffDay, &s.PatientDay, &s.HPPD, &s.DischargeCount, &s.NewAdmission, &s.Productivity, &s.CMI, &s.CAPStatus, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *summaryRepoPG) Upsert(ctx context.Context, s *DailySummary) error {
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO ipd_daily_summary (ward_id, record_date, total_staff_day, patient_day, hppd, discharge_count, new_admission, productivity, cmi, cap_status)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (ward_id, record_date) DO UPDATE SET
			total_staff_day = EXCLUDED.total_staff_day,
			patient_day = EXCLUDED.patient_day,
			hppd = EXCLUDED.hppd,
			discharge_count = EXCLUDED.discharge_count,
			new_admission = EXCLUDED.new_admission,
			productivity = EXCLUDED.productivity,
			cmi = EXCLUDED.cmi,
			cap_status = EXCLUDED.cap_status,
			updated_at = NOW()
		RETURNING id`,
		s.WardID, s.RecordDate, s.TotalStaffDay, s.PatientDay, s.HPPD, s.DischargeCount, s.NewAdmission, s.Productivity, s.CMI, s.CAPStatus,
	).Scan(&s.ID)
}

func (r *summaryRepoPG) ListByDate(ctx context.Context, date string, wardID uuid.UUID) ([]*DailySummary, error) {
	query := `SELECT ` + summaryCols + ` FROM ipd_daily_summary WHERE record_date = $1::date`
	args := []interface{}{date}
	if wardID != uuid.Nil {
		args = append(args, wardID)
		query += ` AND ward_id = $2`
	}
	query += ` ORDER BY ward_id`
	return r.querySummaries(ctx, query, args...)
}

func (r *summaryRepoPG) ListRange(ctx context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*DailySummary, error) {
	query := `SELECT ` + summaryCols + ` FROM ipd_daily_summary
		WHERE record_date BETWEEN $1::date AND $2::date`
	args := []interface{}{dateFrom, dateTo}
	if len(wardIDs) > 0 {
		args = append(args, wardIDs)
		query += ` AND ward_id = ANY($3)`
	}
	query += ` ORDER BY ward_id, record_date`
	return r.querySummaries(ctx, query, args...)
}

func (r *summaryRepoPG) LatestDate(ctx context.Context) (string, error) {
	var date string
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COALESCE(MAX(record_date)::text, '') FROM ipd_daily_summary`).Scan(&date)
	return date, err
}

func (r *summaryRepoPG) querySummaries(ctx context.Context, query string, args ...interface{}) ([]*DailySummary, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DailySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// =========== Transaction Runner ===========

type txRunnerPG struct{ pool *pgxpool.Pool }

func NewTxRunnerPG(pool *pgxpool.Pool) TxRunner {
	return &txRunnerPG{pool: pool}
}

func (t *txRunnerPG) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.WithTx(ctx, t.pool, fn)
}
