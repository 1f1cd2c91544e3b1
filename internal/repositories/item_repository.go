package repositories

import (
	"database/sql"
	"fmt"

	"inventory_backend/internal/models"
)

// ItemRepository defines the interface for category and item database operations.
type ItemRepository interface {
	CreateCategory(name string) (int64, error)
	ListCategories() ([]models.Category, error)
	DeleteCategory(categoryID int64) error

	CreateItem(executor SQLExecutor, item *models.Item) (int64, error)
	GetItemByID(itemID int64) (*models.Item, error)
	ListItems() ([]models.Item, error)
	ListItemsByCategory(category string) ([]models.Item, error)
	SetQuantity(executor SQLExecutor, itemID int64, quantity int) error
	DecrementQuantity(executor SQLExecutor, itemID int64, amount int) (int, error)
	DeleteItem(itemID int64) error
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) CreateCategory(name string) (int64, error) {
	var id int64
	err := r.db.QueryRow(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: category %q", ErrDuplicateKey, name)
		}
		return 0, fmt.Errorf("%w: creating category: %v", ErrDatabaseError, err)
	}
	return id, nil
}

func (r *itemRepository) ListCategories() ([]models.Category, error) {
	rows, err := r.db.Query(`SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating categories: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

// DeleteCategory removes the category row only. Items referencing the
// category keep their category string; there is no cascade.
func (r *itemRepository) DeleteCategory(categoryID int64) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("%w: deleting category: %v", ErrDatabaseError, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting category: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) CreateItem(executor SQLExecutor, item *models.Item) (int64, error) {
	query := `INSERT INTO items (category, name, barcode, quantity, threshold)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	var itemID int64
	err := executor.QueryRow(query,
		item.Category, item.Name, item.Barcode, item.Quantity, item.Threshold,
	).Scan(&itemID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: item %q", ErrDuplicateKey, item.Name)
		}
		return 0, fmt.Errorf("%w: creating item: %v", ErrDatabaseError, err)
	}
	item.ID = itemID
	return itemID, nil
}

func (r *itemRepository) GetItemByID(itemID int64) (*models.Item, error) {
	item := &models.Item{}
	query := `SELECT id, category, name, barcode, quantity, threshold FROM items WHERE id = $1`

	err := r.db.QueryRow(query, itemID).Scan(
		&item.ID, &item.Category, &item.Name, &item.Barcode, &item.Quantity, &item.Threshold,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting item: %v", ErrDatabaseError, err)
	}
	return item, nil
}

func (r *itemRepository) ListItems() ([]models.Item, error) {
	return r.queryItems(`SELECT id, category, name, barcode, quantity, threshold FROM items ORDER BY id`)
}

func (r *itemRepository) ListItemsByCategory(category string) ([]models.Item, error) {
	return r.queryItems(
		`SELECT id, category, name, barcode, quantity, threshold FROM items WHERE category = $1 ORDER BY id`,
		category)
}

func (r *itemRepository) queryItems(query string, args ...interface{}) ([]models.Item, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Category, &item.Name, &item.Barcode,
			&item.Quantity, &item.Threshold); err != nil {
			return nil, fmt.Errorf("%w: scanning item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// SetQuantity is the unconditional absolute overwrite used by manual
// admin correction. Non-negativity is validated at the service layer and
// enforced again by the schema CHECK.
func (r *itemRepository) SetQuantity(executor SQLExecutor, itemID int64, quantity int) error {
	res, err := executor.Exec(`UPDATE items SET quantity = $1 WHERE id = $2`, quantity, itemID)
	if err != nil {
		return fmt.Errorf("%w: setting quantity: %v", ErrDatabaseError, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: setting quantity: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementQuantity applies a bounded decrement as a single atomic
// check-and-set: the WHERE clause refuses the update when stock is
// insufficient, so two racing takes can never both observe the old
// quantity. Returns the new quantity, or ErrNotFound when the guard
// (or the item) did not match.
func (r *itemRepository) DecrementQuantity(executor SQLExecutor, itemID int64, amount int) (int, error) {
	var newQuantity int
	err := executor.QueryRow(
		`UPDATE items SET quantity = quantity - $1
		 WHERE id = $2 AND quantity >= $1
		 RETURNING quantity`,
		amount, itemID,
	).Scan(&newQuantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: decrementing quantity: %v", ErrDatabaseError, err)
	}
	return newQuantity, nil
}

func (r *itemRepository) DeleteItem(itemID int64) error {
	res, err := r.db.Exec(`DELETE FROM items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%w: deleting item: %v", ErrDatabaseError, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting item: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
