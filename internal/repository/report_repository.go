package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// BestProfession returns the profession with the highest paid total in
// [from, to). gorm.ErrRecordNotFound when nothing was paid.
func (r *ReportRepository) BestProfession(ctx context.Context, from, to time.Time) (*model.ProfessionEarnings, error) {
	var rows []model.ProfessionEarnings
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.profession AS profession,
			SUM(j.price) AS earned
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid = ?
			AND j.payment_date >= ?
			AND j.payment_date < ?
		GROUP BY p.profession
		ORDER BY earned DESC, p.profession ASC
		LIMIT 1
	`, true, from, to).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	best := rows[0]
	best.Earned = best.Earned.Round(2)
	return &best, nil
}

func (r *ReportRepository) BestClients(ctx context.Context, from, to time.Time, limit int) ([]model.ClientPayments, error) {
	var rows []struct {
		ID        uint
		FullName  string
		TotalPaid decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id AS id,
			p.first_name || ' ' || p.last_name AS full_name,
			SUM(j.price) AS total_paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.paid = ?
			AND j.payment_date >= ?
			AND j.payment_date < ?
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY total_paid DESC, p.id ASC
		LIMIT ?
	`, true, from, to, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]model.ClientPayments, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.ClientPayments{
			ID:       row.ID,
			FullName: row.FullName,
			Paid:     row.TotalPaid.Round(2),
		})
	}
	return result, nil
}
