package invoices

import (
	"context"

	"invoice-management-backend/internal/clock"
	"invoice-management-backend/internal/models"
	"invoice-management-backend/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// DashboardPath is the logical view path invalidated after every successful
// mutation and the redirect target for create and update.
const DashboardPath = "/dashboard/invoices"

const (
	msgCreateFailed = "Database Error: Failed to Create Invoice."
	msgUpdateFailed = "Database Error: Failed to Update Invoice."
	msgDeleteFailed = "Database Error: Failed to Delete Invoice."
	msgDeleted      = "Deleted Invoice."
)

// Store executes exactly one statement per call against the invoice relation.
type Store interface {
	Insert(ctx context.Context, row *models.Invoice) error
	Update(ctx context.Context, id, customerID string, amountInCents int64, status string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
}

// Invalidator marks cached renders of a view path stale.
type Invalidator interface {
	Invalidate(path string)
}

// AuditTrail records mutations that reached the store. Failures here never
// change the pipeline outcome.
type AuditTrail interface {
	Record(ctx context.Context, invoiceID, action string, details map[string]interface{}) error
}

// Result is the terminal outcome of a mutation that did not fail validation.
// Exactly one arm is populated: Redirect on create/update success, Message for
// delete success and for recovered persistence failures (Failed then set).
type Result struct {
	Redirect string
	Message  string
	Failed   bool
}

type Service struct {
	store Store
	views Invalidator
	audit AuditTrail
	clock clock.Clock
	log   *zap.Logger
}

func New(store Store, views Invalidator, audit AuditTrail, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{
		store: store,
		views: views,
		audit: audit,
		clock: clk,
		log:   log,
	}
}

// Create validates raw form fields, normalizes them, and inserts a new
// invoice. Validation faults are returned as an error and propagate to the
// caller; persistence faults are recovered into the Result message.
func (s *Service) Create(ctx context.Context, raw map[string]string) (*Result, error) {
	in, err := validation.ParseCreateInvoice(raw)
	if err != nil {
		return nil, err
	}

	row := &models.Invoice{
		CustomerID:    in.CustomerID,
		AmountInCents: toCents(in.Amount),
		Status:        in.Status,
		Date:          datatypes.Date(s.clock.Now()),
	}
	if err := s.store.Insert(ctx, row); err != nil {
		s.log.Error("insert invoice failed", zap.Error(err))
		return &Result{Message: msgCreateFailed, Failed: true}, nil
	}

	s.recordAudit(ctx, row.ID.String(), "create", map[string]interface{}{
		"customer_id":     row.CustomerID,
		"amount_in_cents": row.AmountInCents,
		"status":          row.Status,
	})
	s.views.Invalidate(DashboardPath)
	return &Result{Redirect: DashboardPath}, nil
}

// Update validates raw form fields and rewrites the mutable columns of the
// invoice matching id. The issuance date and id are never touched. Fault
// handling mirrors Create.
func (s *Service) Update(ctx context.Context, id string, raw map[string]string) (*Result, error) {
	in, err := validation.ParseUpdateInvoice(raw)
	if err != nil {
		return nil, err
	}

	amountInCents := toCents(in.Amount)
	if err := s.store.Update(ctx, id, in.CustomerID, amountInCents, in.Status); err != nil {
		s.log.Error("update invoice failed", zap.String("invoice_id", id), zap.Error(err))
		return &Result{Message: msgUpdateFailed, Failed: true}, nil
	}

	s.recordAudit(ctx, id, "update", map[string]interface{}{
		"customer_id":     in.CustomerID,
		"amount_in_cents": amountInCents,
		"status":          in.Status,
	})
	s.views.Invalidate(DashboardPath)
	return &Result{Redirect: DashboardPath}, nil
}

// Delete removes the invoice matching id. The id is an opaque pass-through;
// no input shape is validated. Delete never redirects.
func (s *Service) Delete(ctx context.Context, id string) (*Result, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error("delete invoice failed", zap.String("invoice_id", id), zap.Error(err))
		return &Result{Message: msgDeleteFailed, Failed: true}, nil
	}

	s.recordAudit(ctx, id, "delete", nil)
	s.views.Invalidate(DashboardPath)
	return &Result{Message: msgDeleted}, nil
}

// Get fetches a single invoice.
func (s *Service) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all invoices for the dashboard view.
func (s *Service) List(ctx context.Context) ([]models.Invoice, error) {
	return s.store.List(ctx)
}

func (s *Service) recordAudit(ctx context.Context, invoiceID, action string, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, invoiceID, action, details); err != nil {
		s.log.Warn("audit record failed",
			zap.String("invoice_id", invoiceID),
			zap.String("action", action),
			zap.Error(err))
	}
}

// toCents converts a major-unit amount to an integer count of minor units,
// rounding half away from zero. The conversion is one-way.
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
