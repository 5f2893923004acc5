package repository

import (
	"context"

	"github.com/kallospos/billing-api/internal/domain/entity"
	domainRepo "github.com/kallospos/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// CreateWithItems inserts the bill row and all line rows in one transaction.
// A failure on any row rolls back the whole bill, so readers never observe
// a bill without its items or orphaned items.
func (r *billRepository) CreateWithItems(ctx context.Context, bill *entity.Bill, items []entity.BillItem) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].BillID = bill.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bill.ID, nil
}

func (r *billRepository) GetByID(ctx context.Context, id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		First(&bill, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) List(ctx context.Context, limit, offset int) ([]domainRepo.BillSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Bill{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []domainRepo.BillSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT bills.*, customers.name AS customer_name
		FROM bills
		LEFT JOIN customers ON bills.customer_id = customers.id
		ORDER BY bills.created_at DESC, bills.id DESC
		LIMIT ? OFFSET ?
	`, limit, offset).Scan(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *billRepository) GetItems(ctx context.Context, billID uint) ([]entity.BillItem, error) {
	var items []entity.BillItem
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *billRepository) CountAfter(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Bill{}).
		Where("id > ?", id).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *billRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(id), 0) FROM bills
	`).Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID, nil
}
