package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"inventory_backend/internal/models"
)

// TransactionRepository defines the interface for the append-only take log.
type TransactionRepository interface {
	Create(executor SQLExecutor, txn *models.Transaction) (int64, error)
	List() ([]models.Transaction, error)
	LastForItem(itemID int64) (*models.LastTaken, error)
}

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository.
func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends one transaction. It always runs on the executor of the
// take operation so the insert and the quantity decrement share one
// success/failure boundary.
func (r *transactionRepository) Create(executor SQLExecutor, txn *models.Transaction) (int64, error) {
	if txn.Timestamp.IsZero() {
		txn.Timestamp = time.Now()
	}

	var id int64
	err := executor.QueryRow(
		`INSERT INTO transactions (user_id, item_id, quantity_taken, timestamp)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		txn.UserID, txn.ItemID, txn.QuantityTaken, txn.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating transaction: %v", ErrDatabaseError, err)
	}
	txn.ID = id
	return id, nil
}

// List returns every transaction joined with user and item names,
// newest first. Window filtering happens in the service layer.
func (r *transactionRepository) List() ([]models.Transaction, error) {
	query := `SELECT t.id, t.user_id, t.item_id, t.quantity_taken, t.timestamp,
	                 u.name, i.name
	          FROM transactions t
	          JOIN users u ON t.user_id = u.id
	          JOIN items i ON t.item_id = i.id
	          ORDER BY t.timestamp DESC, t.id DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(&txn.ID, &txn.UserID, &txn.ItemID, &txn.QuantityTaken,
			&txn.Timestamp, &txn.UserName, &txn.ItemName); err != nil {
			return nil, fmt.Errorf("%w: scanning transaction: %v", ErrDatabaseError, err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating transactions: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}

// LastForItem returns the most recent take of an item, or ErrNotFound
// when the item was never taken.
func (r *transactionRepository) LastForItem(itemID int64) (*models.LastTaken, error) {
	last := &models.LastTaken{}
	query := `SELECT u.name, t.timestamp
	          FROM transactions t
	          JOIN users u ON t.user_id = u.id
	          WHERE t.item_id = $1
	          ORDER BY t.timestamp DESC, t.id DESC
	          LIMIT 1`

	err := r.db.QueryRow(query, itemID).Scan(&last.UserName, &last.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting last take for item: %v", ErrDatabaseError, err)
	}
	return last, nil
}
