package repository

import (
	"context"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
)

// SIERepository defines the interface for imported SIE ledger access.
// A ledger is selected by the authenticated session's company name and
// database number.
type SIERepository interface {
	// GetByCompany returns the imported ledger row for the company, or
	// nil when none has been imported.
	GetByCompany(ctx context.Context, companyName string, databaseNumber int) (*entity.SIEData, error)

	// Save upserts an imported ledger for the company.
	Save(ctx context.Context, data *entity.SIEData) error
}
