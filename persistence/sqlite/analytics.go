package sqlite

import (
	"context"
	"database/sql"
	"time"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/analytics"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (repo *AnalyticsRepository) PaidMemberCount(ctx context.Context) (int, error) {
	var n int
	err := repo.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT user_id) FROM clearances
		WHERE payment_status = ? AND archived = 0`,
		nexus.PaymentPaid).Scan(&n)

	return n, err
}

func (repo *AnalyticsRepository) PaidMembersByRequirement(ctx context.Context) (map[string]int, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT requirement, COUNT(DISTINCT user_id) FROM clearances
		WHERE payment_status = ? AND archived = 0
		GROUP BY requirement`,
		nexus.PaymentPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			requirement string
			n           int
		)

		if err := rows.Scan(&requirement, &n); err != nil {
			return nil, err
		}

		out[requirement] = n
	}

	return out, rows.Err()
}

func (repo *AnalyticsRepository) ActivePaidMemberCount(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := repo.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT c.user_id)
		FROM clearances c
		JOIN users u ON u.id = c.user_id
		WHERE c.payment_status = ? AND c.archived = 0 AND u.last_active >= ?`,
		nexus.PaymentPaid, since).Scan(&n)

	return n, err
}

func (repo *AnalyticsRepository) PaymentStatusCounts(ctx context.Context) (map[nexus.PaymentStatus]int, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT payment_status, COUNT(*) FROM clearances
		WHERE archived = 0
		GROUP BY payment_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[nexus.PaymentStatus]int)
	for rows.Next() {
		var (
			status nexus.PaymentStatus
			n      int
		)

		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}

		out[status] = n
	}

	return out, rows.Err()
}

func (repo *AnalyticsRepository) PaymentMethodCounts(ctx context.Context) ([]analytics.MethodCount, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT payment_method, COUNT(*) FROM clearances
		WHERE payment_method IS NOT NULL AND archived = 0
		GROUP BY payment_method
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.MethodCount
	for rows.Next() {
		var mc analytics.MethodCount
		if err := rows.Scan(&mc.Method, &mc.Count); err != nil {
			return nil, err
		}

		out = append(out, mc)
	}

	return out, rows.Err()
}

func (repo *AnalyticsRepository) PaymentByRequirementAndYear(ctx context.Context) ([]analytics.RequirementYearStatus, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT c.requirement, COALESCE(u.year, ''), c.payment_status, COUNT(*)
		FROM clearances c
		JOIN users u ON u.id = c.user_id
		WHERE c.archived = 0
		GROUP BY c.requirement, u.year, c.payment_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.RequirementYearStatus
	for rows.Next() {
		var row analytics.RequirementYearStatus
		if err := rows.Scan(&row.Requirement, &row.Year, &row.Status, &row.Count); err != nil {
			return nil, err
		}

		out = append(out, row)
	}

	return out, rows.Err()
}

func (repo *AnalyticsRepository) ActiveEventsWithCounts(ctx context.Context) ([]nexus.Event, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT e.id, e.title, e.date,
			(SELECT COUNT(*) FROM event_participants p WHERE p.event_id = e.id)
		FROM events e
		WHERE e.archived = 0
		ORDER BY e.date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nexus.Event
	for rows.Next() {
		var e nexus.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.ParticipantCount); err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	return out, rows.Err()
}

func (repo *AnalyticsRepository) ClearancesByRequirementStatus(ctx context.Context) ([]analytics.RequirementStatus, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT requirement, status, COUNT(*) FROM clearances
		WHERE archived = 0
		GROUP BY requirement, status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.RequirementStatus
	for rows.Next() {
		var row analytics.RequirementStatus
		if err := rows.Scan(&row.Requirement, &row.Status, &row.Count); err != nil {
			return nil, err
		}

		out = append(out, row)
	}

	return out, rows.Err()
}

func (repo *AnalyticsRepository) ClearancesByYearStatus(ctx context.Context) ([]analytics.YearStatus, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT COALESCE(u.year, ''), c.status, COUNT(*)
		FROM clearances c
		JOIN users u ON u.id = c.user_id
		WHERE c.archived = 0
		GROUP BY u.year, c.status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.YearStatus
	for rows.Next() {
		var row analytics.YearStatus
		if err := rows.Scan(&row.Year, &row.Status, &row.Count); err != nil {
			return nil, err
		}

		out = append(out, row)
	}

	return out, rows.Err()
}
