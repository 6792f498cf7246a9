package services

import (
	"bytes"
	"context"
	"fmt"

	"fitops/internal/billing"
	"fitops/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptService renders a PDF receipt for an activated subscription and
// stores it in object storage. Generation is best-effort: callers log
// failures instead of failing the activation.
type ReceiptService interface {
	Generate(ctx context.Context, tenant *models.Tenant, subscription *models.Subscription) (string, error)
}

type receiptService struct {
	storage StorageService
}

func NewReceiptService(storage StorageService) ReceiptService {
	return &receiptService{storage: storage}
}

func (s *receiptService) Generate(ctx context.Context, tenant *models.Tenant, subscription *models.Subscription) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Subscription Receipt")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Tenant", tenant.Name},
		{"Workspace", tenant.WorkspaceSlug},
		{"Plan", subscription.PlanName},
		{"Amount", fmt.Sprintf("%.2f %s", subscription.Amount, subscription.Currency)},
		{"Price", billing.FormatSubscriptionPrice(subscription.Amount)},
		{"Period start", subscription.BillingPeriodStart.Format("2006-01-02")},
		{"Period end", subscription.BillingPeriodEnd.Format("2006-01-02")},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(45, 8, row[0])
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, row[1])
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("render receipt PDF: %w", err)
	}

	objectName := fmt.Sprintf("%s/%s.pdf", tenant.ID, subscription.ID)
	if err := s.storage.Upload(ctx, ReceiptBucket, objectName, "application/pdf", &buf, int64(buf.Len())); err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}
	return objectName, nil
}
