package services

import (
	"errors"
	"fmt"
	"time"

	"inventory_backend/internal/models"
	"inventory_backend/internal/repositories"
)

var ErrInvalidWindow = errors.New("unknown report window")

// ReportService reads the append-only transaction log for administrative
// reporting.
type ReportService interface {
	ListTransactions(window models.ReportWindow) ([]models.Transaction, error)
	LastForItem(itemID int64) (*models.LastTaken, error)
}

type reportService struct {
	txnRepo repositories.TransactionRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(txnRepo repositories.TransactionRepository) ReportService {
	return &reportService{txnRepo: txnRepo}
}

// ListTransactions returns the log joined with user and item names,
// newest first, filtered to the requested window.
func (s *reportService) ListTransactions(window models.ReportWindow) ([]models.Transaction, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWindow, window)
	}

	all, err := s.txnRepo.List()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	filtered := []models.Transaction{}
	for _, txn := range all {
		if withinWindow(now, txn.Timestamp, window) {
			filtered = append(filtered, txn)
		}
	}
	return filtered, nil
}

// LastForItem reports the most recent take of an item, or nil when the
// item was never taken.
func (s *reportService) LastForItem(itemID int64) (*models.LastTaken, error) {
	last, err := s.txnRepo.LastForItem(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return last, nil
}

// withinWindow implements the report window boundaries. Daily means the
// same calendar date as now. The remaining windows compare the whole-day
// truncated age, so a transaction 6 days 23 hours old still counts as
// weekly.
func withinWindow(now, ts time.Time, window models.ReportWindow) bool {
	switch window {
	case models.WindowInstant:
		return true
	case models.WindowDaily:
		y1, m1, d1 := now.Date()
		y2, m2, d2 := ts.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}

	ageDays := int(now.Sub(ts).Hours() / 24)
	switch window {
	case models.WindowWeekly:
		return ageDays < 7
	case models.WindowMonthly:
		return ageDays < 30
	case models.WindowYearly:
		return ageDays < 365
	}
	return false
}
