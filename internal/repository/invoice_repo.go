package repository

import (
	"context"
	"encoding/json"

	"invoice-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Insert writes a new invoice row. The id is assigned here, not by callers.
func (r *InvoiceRepository) Insert(ctx context.Context, row *models.Invoice) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// Update rewrites the mutable columns of the row matching id. The issuance
// date and id are never part of the statement. Zero matched rows is not an
// error.
func (r *InvoiceRepository) Update(ctx context.Context, id, customerID string, amountInCents int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id":     customerID,
			"amount_in_cents": amountInCents,
			"status":          status,
		}).Error
}

// Delete removes the row matching id.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{}).Error
}

// GetByID fetches a single invoice by id.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns all invoices, newest first.
func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Record appends an audit entry for a mutation that reached the store.
func (r *AuditLogRepository) Record(ctx context.Context, invoiceID, action string, details map[string]interface{}) error {
	entry := &models.InvoiceAuditLog{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		Action:    action,
	}
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		entry.Details = datatypes.JSON(payload)
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
