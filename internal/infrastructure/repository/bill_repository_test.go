package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kallospos/billing-api/internal/config"
	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/enum"
	"github.com/kallospos/billing-api/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(&config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func sampleBill(total float64) *entity.Bill {
	return &entity.Bill{
		BillNo:      "01",
		Subtotal:    total,
		CGST:        1.67,
		SGST:        1.67,
		Total:       total,
		PaymentMode: enum.PaymentModeCash,
		CreatedAt:   time.Now(),
	}
}

func sampleItems() []entity.BillItem {
	return []entity.BillItem{
		{Name: "Tea", Qty: 2, Price: 20, QtyType: "cup"},
		{Name: "Samosa", Qty: 3, Price: 10, QtyType: "pc"},
	}
}

func TestCreateWithItemsPersistsBillAndLines(t *testing.T) {
	db := newTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	id, err := repo.CreateWithItems(ctx, sampleBill(70), sampleItems())
	require.NoError(t, err)
	require.NotZero(t, id)

	bill, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, bill)
	assert.Equal(t, "01", bill.BillNo)
	assert.InDelta(t, 70.0, bill.Total, 1e-9)
	require.Len(t, bill.Items, 2)
	assert.Equal(t, "Tea", bill.Items[0].Name)

	items, err := repo.GetItems(ctx, id)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCreateWithItemsRollsBackOnBadLine(t *testing.T) {
	db := newTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	items := sampleItems()
	items[1].Qty = -1 // violates the qty > 0 check

	_, err := repo.CreateWithItems(ctx, sampleBill(70), items)
	require.Error(t, err)

	// The whole bill rolled back: no header, no orphaned lines.
	var billCount, itemCount int64
	require.NoError(t, db.Model(&entity.Bill{}).Count(&billCount).Error)
	require.NoError(t, db.Model(&entity.BillItem{}).Count(&itemCount).Error)
	assert.Zero(t, billCount)
	assert.Zero(t, itemCount)
}

func TestGetByIDMissingBill(t *testing.T) {
	repo := NewBillRepository(newTestDB(t))

	bill, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, bill)
}

func TestListJoinsCustomerNames(t *testing.T) {
	db := newTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	customer := &entity.Customer{Name: "Asha", Mobile: "9900112233"}
	require.NoError(t, db.Create(customer).Error)

	withCustomer := sampleBill(70)
	withCustomer.CustomerID = &customer.ID
	_, err := repo.CreateWithItems(ctx, withCustomer, sampleItems())
	require.NoError(t, err)

	walkIn := sampleBill(20)
	walkIn.BillNo = "02"
	walkIn.CreatedAt = time.Now().Add(time.Minute)
	_, err = repo.CreateWithItems(ctx, walkIn, sampleItems()[:1])
	require.NoError(t, err)

	bills, total, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, bills, 2)

	// Newest first; the walk-in bill has no customer name.
	assert.Equal(t, "02", bills[0].BillNo)
	assert.Empty(t, bills[0].CustomerName)
	assert.Equal(t, "01", bills[1].BillNo)
	assert.Equal(t, "Asha", bills[1].CustomerName)
}

func TestCountAfterAndMaxID(t *testing.T) {
	db := newTestDB(t)
	repo := NewBillRepository(db)
	ctx := context.Background()

	maxID, err := repo.MaxID(ctx)
	require.NoError(t, err)
	assert.Zero(t, maxID, "empty store has baseline 0")

	for i := 0; i < 3; i++ {
		b := sampleBill(70)
		b.BillNo = "0" + string(rune('1'+i))
		_, err := repo.CreateWithItems(ctx, b, sampleItems())
		require.NoError(t, err)
	}

	maxID, err = repo.MaxID(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, maxID)

	count, err := repo.CountAfter(ctx, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = repo.CountAfter(ctx, maxID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSettingsUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	// Absent key reads as empty, not an error.
	val, err := repo.Get(ctx, entity.SettingBillSequenceStartID)
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, repo.Set(ctx, entity.SettingBillSequenceStartID, "5"))
	require.NoError(t, repo.Set(ctx, entity.SettingBillSequenceStartID, "9"))

	val, err = repo.Get(ctx, entity.SettingBillSequenceStartID)
	require.NoError(t, err)
	assert.Equal(t, "9", val)

	var count int64
	require.NoError(t, db.Model(&entity.Setting{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "set is an upsert, not an insert")
}
