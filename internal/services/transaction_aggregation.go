package services

import (
	"time"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
)

// DefaultTimezone is used for aggregation views when the client does not
// send one.
const DefaultTimezone = "Asia/Jakarta"

func resolveLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown timezone: "+timezone)
	}
	return loc, nil
}

// GetTransactionsByDate returns all of the user's transactions grouped into
// calendar-day buckets in the given timezone. Buckets are ordered newest day
// first and transactions within a bucket newest first.
func (s *transactionService) GetTransactionsByDate(userID, timezone string) ([]DayBucket, error) {
	loc, err := resolveLocation(timezone)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Rows arrive newest first, so each day's first row is also its newest
	// and days are encountered in descending order.
	buckets := make(map[string]*DayBucket)
	var order []string
	for _, t := range transactions {
		local := t.CreatedAt.In(loc)
		key := local.Format("02-01-2006")
		bucket, ok := buckets[key]
		if !ok {
			bucket = &DayBucket{Date: key, Timestamp: t.CreatedAt}
			buckets[key] = bucket
			order = append(order, key)
		}
		bucket.Transactions = append(bucket.Transactions, DayBucketTransaction{
			ID:          t.ID,
			Description: t.Description,
			Amount:      t.Amount,
			Type:        t.Type,
			Category:    t.Category,
			Time:        local.Format("15:04"),
		})
	}

	result := make([]DayBucket, 0, len(order))
	for _, key := range order {
		result = append(result, *buckets[key])
	}
	return result, nil
}

// GetTotalByPeriod returns per-day inflow and outflow sums for the trailing
// period, one entry per calendar day in the user's timezone. Days without
// transactions are filled with zeroes so the result always has exactly the
// period's length, in chronological order ending today.
func (s *transactionService) GetTotalByPeriod(userID string, period Period, timezone string) ([]PeriodTotal, error) {
	days := period.Days()
	if days == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be week or month")
	}
	loc, err := resolveLocation(timezone)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := today.AddDate(0, 0, -(days - 1))

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND created_at >= ?", userID, start).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type daySum struct {
		in  int64
		out int64
	}
	sums := make(map[string]*daySum)
	for _, t := range transactions {
		key := t.CreatedAt.In(loc).Format("2006-01-02")
		sum, ok := sums[key]
		if !ok {
			sum = &daySum{}
			sums[key] = sum
		}
		switch t.Type {
		case models.TransactionTypeIn:
			sum.in += t.Amount
		case models.TransactionTypeOut:
			sum.out += t.Amount
		}
	}

	totals := make([]PeriodTotal, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		entry := PeriodTotal{Day: day.Day(), Timestamp: day}
		if sum, ok := sums[day.Format("2006-01-02")]; ok {
			entry.In = sum.in
			entry.Out = sum.out
			entry.Total = sum.in + sum.out
		}
		totals = append(totals, entry)
	}
	return totals, nil
}
