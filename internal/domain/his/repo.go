package his

import "context"

// Repository queries the HIS data warehouse. Date keys are integers in
// YYYYMMDD form, matching the warehouse star schema.
type Repository interface {
	Census(ctx context.Context, wardKeys []int, dateKey int) (patientDay, admissions, discharges int, err error)
	BedCount(ctx context.Context, wardKeys []int) (int, error)
	ListWards(ctx context.Context) ([]*Ward, error)
}
