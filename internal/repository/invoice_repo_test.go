package repository

import (
	"context"
	"testing"
	"time"

	"invoice-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Invoice{}, &models.InvoiceAuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedInvoice(t *testing.T, repo *InvoiceRepository) *models.Invoice {
	t.Helper()
	row := &models.Invoice{
		CustomerID:    "cust_1",
		AmountInCents: 4250,
		Status:        models.StatusPending,
		Date:          datatypes.Date(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
	}
	if err := repo.Insert(context.Background(), row); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return row
}

func TestInsertAssignsID(t *testing.T) {
	repo := NewInvoiceRepository(newTestDB(t))
	row := seedInvoice(t, repo)

	if row.ID == uuid.Nil {
		t.Fatal("expected insert to assign an id")
	}
	stored, err := repo.GetByID(context.Background(), row.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.AmountInCents != 4250 || stored.CustomerID != "cust_1" {
		t.Fatalf("unexpected stored row %+v", stored)
	}
}

func TestUpdateLeavesDateAndIDUntouched(t *testing.T) {
	repo := NewInvoiceRepository(newTestDB(t))
	row := seedInvoice(t, repo)

	err := repo.Update(context.Background(), row.ID.String(), "cust_2", 1000, models.StatusPaid)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), row.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.CustomerID != "cust_2" || stored.AmountInCents != 1000 || stored.Status != models.StatusPaid {
		t.Fatalf("expected mutable columns rewritten, got %+v", stored)
	}
	if stored.ID != row.ID {
		t.Fatal("id must not change on update")
	}
	want := time.Time(row.Date).Format("2006-01-02")
	if got := time.Time(stored.Date).Format("2006-01-02"); got != want {
		t.Fatalf("date must not change on update: want %s, got %s", want, got)
	}
}

func TestUpdateZeroRowsIsNotAnError(t *testing.T) {
	repo := NewInvoiceRepository(newTestDB(t))

	err := repo.Update(context.Background(), uuid.NewString(), "cust_2", 1000, models.StatusPaid)
	if err != nil {
		t.Fatalf("zero matched rows must not surface as a fault, got %v", err)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	repo := NewInvoiceRepository(newTestDB(t))
	row := seedInvoice(t, repo)

	if err := repo.Delete(context.Background(), row.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), row.ID.String()); err == nil {
		t.Fatal("expected row to be gone")
	}
}

func TestListReturnsRows(t *testing.T) {
	repo := NewInvoiceRepository(newTestDB(t))
	seedInvoice(t, repo)
	seedInvoice(t, repo)

	rows, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestAuditRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditLogRepository(db)

	err := repo.Record(context.Background(), "inv_9", "update", map[string]interface{}{
		"status": "paid",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	var entries []models.InvoiceAuditLog
	if err := db.Find(&entries).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "update" || entries[0].InvoiceID != "inv_9" {
		t.Fatalf("unexpected audit entries %+v", entries)
	}
}
