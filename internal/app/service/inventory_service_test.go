package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
)

func setupInventoryServiceTest(t *testing.T) (InventoryService, *gorm.DB, *model.Product) {
	testDB := setupTestDB(t)

	inventoryService := NewInventoryService(
		repository.NewProductRepository(testDB),
		repository.NewInventoryLogRepository(testDB),
		newTestNotificationService(testDB),
	)

	product := &model.Product{Name: "Sea Salt Brownie", Category: model.CategoryPremium, IsAvailable: true}
	variant := model.Variant{Name: "Box of 6", Price: 280}
	variant.SetStock(40)
	product.Variants = []model.Variant{variant}
	testDB.Create(product)

	return inventoryService, testDB, product
}

func TestInventoryService_UpdateStock_WritesAuditLog(t *testing.T) {
	inventoryService, testDB, product := setupInventoryServiceTest(t)

	variant, err := inventoryService.UpdateStock(UpdateStockInput{
		ProductID:   product.ID,
		VariantName: "Box of 6",
		NewQuantity: 100,
		Reason:      "Weekend restock",
		UpdatedBy:   7,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, variant.StockQuantity)
	assert.True(t, variant.InStock)

	var logs []model.InventoryLog
	testDB.Find(&logs)
	require.Len(t, logs, 1)
	assert.Equal(t, 40, logs[0].PreviousQuantity)
	assert.Equal(t, 100, logs[0].NewQuantity)
	assert.Equal(t, model.InventoryChangeIncrement, logs[0].ChangeType)
	assert.Equal(t, "Weekend restock", logs[0].Reason)
	assert.Equal(t, uint(7), logs[0].UpdatedBy)
}

func TestInventoryService_UpdateStock_DecrementChangeType(t *testing.T) {
	inventoryService, testDB, product := setupInventoryServiceTest(t)

	_, err := inventoryService.UpdateStock(UpdateStockInput{
		ProductID:   product.ID,
		VariantName: "Box of 6",
		NewQuantity: 30,
		Reason:      "Spoiled batch",
		UpdatedBy:   7,
	})
	require.NoError(t, err)

	var entry model.InventoryLog
	testDB.First(&entry)
	assert.Equal(t, model.InventoryChangeDecrement, entry.ChangeType)
}

func TestInventoryService_UpdateStock_ZeroClearsInStock(t *testing.T) {
	inventoryService, _, product := setupInventoryServiceTest(t)

	variant, err := inventoryService.UpdateStock(UpdateStockInput{
		ProductID:   product.ID,
		VariantName: "Box of 6",
		NewQuantity: 0,
		UpdatedBy:   7,
	})
	require.NoError(t, err)
	assert.False(t, variant.InStock)
}

func TestInventoryService_UpdateStock_LowStockAlert(t *testing.T) {
	inventoryService, testDB, product := setupInventoryServiceTest(t)

	_, err := inventoryService.UpdateStock(UpdateStockInput{
		ProductID:   product.ID,
		VariantName: "Box of 6",
		NewQuantity: 20,
		UpdatedBy:   7,
	})
	require.NoError(t, err)

	var alerts []model.Notification
	testDB.Where("type = ?", model.NotificationTypeInventory).Find(&alerts)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "Sea Salt Brownie")
}

func TestInventoryService_UpdateStock_NoAlertAboveThreshold(t *testing.T) {
	inventoryService, testDB, product := setupInventoryServiceTest(t)

	_, err := inventoryService.UpdateStock(UpdateStockInput{
		ProductID:   product.ID,
		VariantName: "Box of 6",
		NewQuantity: 21,
		UpdatedBy:   7,
	})
	require.NoError(t, err)

	var count int64
	testDB.Model(&model.Notification{}).Where("type = ?", model.NotificationTypeInventory).Count(&count)
	assert.Zero(t, count)
}

func TestInventoryService_UpdateStock_NegativeRejected(t *testing.T) {
	inventoryService, _, product := setupInventoryServiceTest(t)

	_, err := inventoryService.UpdateStock(UpdateStockInput{
		ProductID:   product.ID,
		VariantName: "Box of 6",
		NewQuantity: -1,
		UpdatedBy:   7,
	})
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestInventoryService_UpdateStock_UnknownVariant(t *testing.T) {
	inventoryService, _, product := setupInventoryServiceTest(t)

	_, err := inventoryService.UpdateStock(UpdateStockInput{
		ProductID:   product.ID,
		VariantName: "Box of 99",
		NewQuantity: 10,
		UpdatedBy:   7,
	})
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestInventoryService_Logs_FilterByProduct(t *testing.T) {
	inventoryService, testDB, product := setupInventoryServiceTest(t)

	other := &model.Product{Name: "Matcha Brownie", Category: model.CategorySeasonal, IsAvailable: true}
	otherVariant := model.Variant{Name: "Box of 4", Price: 320}
	otherVariant.SetStock(15)
	other.Variants = []model.Variant{otherVariant}
	testDB.Create(other)

	for _, p := range []*model.Product{product, other} {
		_, err := inventoryService.UpdateStock(UpdateStockInput{
			ProductID:   p.ID,
			VariantName: p.Variants[0].Name,
			NewQuantity: 50,
			UpdatedBy:   7,
		})
		require.NoError(t, err)
	}

	logs, total, err := inventoryService.Logs(product.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, product.ID, logs[0].ProductID)

	_, totalAll, err := inventoryService.Logs(0, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totalAll)
}
