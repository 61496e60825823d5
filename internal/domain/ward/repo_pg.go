package ward

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const wardCols = `id, code, name, dept_type, is_active, fields_config, his_ward_keys, created_at, updated_at`

func scanWard(row pgx.Row) (*Ward, error) {
	var w Ward
	err := row.Scan(&w.ID, &w.Code, &w.Name, &w.DeptType, &w.IsActive, &w.FieldsConfig, &w.HISWardKeys, &w.CreatedAt, &w.UpdatedAt)
	return &w, err
}

func (r *repoPG) List(ctx context.Context, deptType string, includeInactive bool) ([]*Ward, error) {
	query := `SELECT ` + wardCols + ` FROM nursing_wards WHERE 1=1`
	var args []interface{}
	if deptType != "" {
		args = append(args, deptType)
		query += ` AND dept_type = $1`
	}
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY code`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Ward
	for rows.Next() {
		w, err := scanWard(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Ward, error) {
	return scanWard(r.conn(ctx).QueryRow(ctx, `SELECT `+wardCols+` FROM nursing_wards WHERE id = $1`, id))
}

func (r *repoPG) GetByCode(ctx context.Context, code string) (*Ward, error) {
	return scanWard(r.conn(ctx).QueryRow(ctx, `SELECT `+wardCols+` FROM nursing_wards WHERE code = $1`, code))
}

func (r *repoPG) Create(ctx context.Context, w *Ward) error {
	w.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO nursing_wards (id, code, name, dept_type, is_active, fields_config, his_ward_keys)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		w.ID, w.Code, w.Name, w.DeptType, w.IsActive, w.FieldsConfig, w.HISWardKeys)
	return err
}

func (r *repoPG) Update(ctx context.Context, w *Ward) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE nursing_wards SET code=$2, name=$3, dept_type=$4, is_active=$5, fields_config=$6, his_ward_keys=$7, updated_at=NOW()
		WHERE id = $1`,
		w.ID, w.Code, w.Name, w.DeptType, w.IsActive, w.FieldsConfig, w.HISWardKeys)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM nursing_wards WHERE id = $1`, id)
	return err
}
