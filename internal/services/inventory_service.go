package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"inventory_backend/internal/models"
	"inventory_backend/internal/repositories"
)

var (
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrItemExists        = errors.New("item already exists")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock for item")
)

// AddItemRequest DTO
type AddItemRequest struct {
	Category  string  `json:"category" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Barcode   *string `json:"barcode,omitempty"`
	Quantity  int     `json:"quantity" binding:"min=0"`
	Threshold int     `json:"threshold" binding:"min=0"`
}

// TakeResult reports the outcome of a successful take.
type TakeResult struct {
	ItemID      int64 `json:"item_id"`
	Taken       int   `json:"taken"`
	NewQuantity int   `json:"new_quantity"`
}

// InventoryService is the stock ledger: categories and items, bounded
// decrements and absolute overwrites, plus the derived low-stock view.
type InventoryService interface {
	AddCategory(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	DeleteCategory(categoryID int64) error

	AddItem(req AddItemRequest) (*models.Item, error)
	ListItems() ([]models.Item, error)
	ListItemsByCategory(category string) ([]models.Item, error)
	SetQuantity(itemID int64, quantity int) error
	Take(userID, itemID int64, amount int) (*TakeResult, error)
	DeleteItem(itemID int64) error

	LowStockAlerts() ([]models.LowStockAlert, error)
}

type inventoryService struct {
	itemRepo repositories.ItemRepository
	txnRepo  repositories.TransactionRepository
	db       *sql.DB
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	itemRepo repositories.ItemRepository,
	txnRepo repositories.TransactionRepository,
	db *sql.DB,
) InventoryService {
	return &inventoryService{itemRepo: itemRepo, txnRepo: txnRepo, db: db}
}

func (s *inventoryService) AddCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name must not be empty", ErrValidation)
	}

	id, err := s.itemRepo.CreateCategory(name)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &models.Category{ID: id, Name: name}, nil
}

func (s *inventoryService) ListCategories() ([]models.Category, error) {
	return s.itemRepo.ListCategories()
}

func (s *inventoryService) DeleteCategory(categoryID int64) error {
	err := s.itemRepo.DeleteCategory(categoryID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

// AddItem registers a new item. The category is a soft reference: it is
// stored by name and not cross-checked against the categories table.
func (s *inventoryService) AddItem(req AddItemRequest) (*models.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name must not be empty", ErrValidation)
	}
	if req.Quantity < 0 || req.Threshold < 0 {
		return nil, fmt.Errorf("%w: quantity and threshold must be non-negative", ErrValidation)
	}

	item := &models.Item{
		Category:  req.Category,
		Name:      name,
		Barcode:   req.Barcode,
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
	}

	if _, err := s.itemRepo.CreateItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrItemExists
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) ListItems() ([]models.Item, error) {
	items, err := s.itemRepo.ListItems()
	if err != nil {
		return nil, err
	}
	s.annotateLastTaken(items)
	return items, nil
}

func (s *inventoryService) ListItemsByCategory(category string) ([]models.Item, error) {
	items, err := s.itemRepo.ListItemsByCategory(category)
	if err != nil {
		return nil, err
	}
	s.annotateLastTaken(items)
	return items, nil
}

// annotateLastTaken fills the "last taken by / at" annotation on each
// item that has at least one recorded take.
func (s *inventoryService) annotateLastTaken(items []models.Item) {
	for i := range items {
		last, err := s.txnRepo.LastForItem(items[i].ID)
		if err != nil {
			// Never-taken items simply stay unannotated.
			continue
		}
		items[i].LastTaken = last
	}
}

// SetQuantity is the absolute admin correction. Only non-negativity is
// enforced; any existing value is overwritten.
func (s *inventoryService) SetQuantity(itemID int64, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrValidation)
	}

	err := s.itemRepo.SetQuantity(s.db, itemID, quantity)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

// Take applies a bounded decrement and appends the matching transaction
// in one database transaction. The decrement itself is an atomic
// check-and-set, so a take that would drive quantity below zero is
// rejected in full and leaves state unchanged, including under
// concurrent callers.
func (s *inventoryService) Take(userID, itemID int64, amount int) (*TakeResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: take amount must be positive", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	newQuantity, err := s.itemRepo.DecrementQuantity(tx, itemID, amount)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// The guard did not match: either the item is missing or the
			// stock is short. Look the item up to tell the two apart.
			if _, lookupErr := s.itemRepo.GetItemByID(itemID); lookupErr != nil {
				return nil, ErrItemNotFound
			}
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	txn := &models.Transaction{UserID: userID, ItemID: itemID, QuantityTaken: amount}
	if _, err := s.txnRepo.Create(tx, txn); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit take: %w", err)
	}

	return &TakeResult{ItemID: itemID, Taken: amount, NewQuantity: newQuantity}, nil
}

func (s *inventoryService) DeleteItem(itemID int64) error {
	err := s.itemRepo.DeleteItem(itemID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

// ComputeLowStock filters items to those strictly below their threshold,
// preserving input order. Pure; equal quantity and threshold is not low
// stock.
func ComputeLowStock(items []models.Item) []models.LowStockAlert {
	alerts := []models.LowStockAlert{}
	for _, item := range items {
		if item.Quantity < item.Threshold {
			alerts = append(alerts, models.LowStockAlert{
				Name:      item.Name,
				Quantity:  item.Quantity,
				Threshold: item.Threshold,
			})
		}
	}
	return alerts
}

// LowStockAlerts recomputes the low-stock view from the current ledger
// state. No caching; every call reflects the store at call time.
func (s *inventoryService) LowStockAlerts() ([]models.LowStockAlert, error) {
	items, err := s.itemRepo.ListItems()
	if err != nil {
		return nil, err
	}
	return ComputeLowStock(items), nil
}
