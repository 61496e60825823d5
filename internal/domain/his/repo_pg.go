package his

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG builds a Repository over the HIS warehouse pool. The warehouse
// is read-only from this service's point of view, so no transaction plumbing
// is involved.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Census(ctx context.Context, wardKeys []int, dateKey int) (int, int, int, error) {
	var patientDay, admissions, discharges int

	// A patient occupies a bed on the key date when admitted on or before it
	// and not yet discharged.
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM fact_visit
		WHERE ward_key = ANY($1) AND is_cancelled = 0
		  AND visit_date_key <= $2
		  AND (discharge_date_key IS NULL OR discharge_date_key > $2)`,
		wardKeys, dateKey).Scan(&patientDay)
	if err != nil {
		return 0, 0, 0, err
	}

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM fact_visit
		WHERE ward_key = ANY($1) AND is_cancelled = 0
		  AND is_admit = 1 AND visit_date_key = $2`,
		wardKeys, dateKey).Scan(&admissions)
	if err != nil {
		return 0, 0, 0, err
	}

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM fact_visit
		WHERE ward_key = ANY($1) AND is_cancelled = 0
		  AND is_discharge = 1 AND discharge_date_key = $2`,
		wardKeys, dateKey).Scan(&discharges)
	if err != nil {
		return 0, 0, 0, err
	}

	return patientDay, admissions, discharges, nil
}

func (r *repoPG) BedCount(ctx context.Context, wardKeys []int) (int, error) {
	var beds int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(bed_count), 0) FROM dim_ward WHERE ward_key = ANY($1)`,
		wardKeys).Scan(&beds)
	return beds, err
}

func (r *repoPG) ListWards(ctx context.Context) ([]*Ward, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ward_key, ward_id, ward_name, COALESCE(bed_count, 0)
		FROM dim_ward WHERE is_visible = 1 ORDER BY ward_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Ward
	for rows.Next() {
		var w Ward
		if err := rows.Scan(&w.WardKey, &w.SourceID, &w.Name, &w.BedCount); err != nil {
			return nil, err
		}
		items = append(items, &w)
	}
	return items, rows.Err()
}
