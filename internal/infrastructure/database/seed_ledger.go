package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	"github.com/kvittoapp/kvitto-api/internal/domain/repository"
)

// SeedLedger imports the SIE document named by SIE_IMPORT_FILE for the
// admin company, when configured. The import pipeline that produced
// the JSON runs elsewhere; this just loads its output so the ledger
// pages have data on a fresh database.
func SeedLedger(ctx context.Context, sieRepo repository.SIERepository) error {
	path := viper.GetString("SIE_IMPORT_FILE")
	company := viper.GetString("ADMIN_COMPANY_NAME")
	databaseNumber := viper.GetInt("ADMIN_DATABASE_NUMBER")

	if path == "" || company == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read SIE import file: %w", err)
	}

	// validate the document before storing it
	var doc entity.SIEDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid SIE import file %s: %w", path, err)
	}

	err = sieRepo.Save(ctx, &entity.SIEData{
		CompanyName:    company,
		DatabaseNumber: databaseNumber,
		FiscalYear:     viper.GetString("SIE_FISCAL_YEAR"),
		SIEJSON:        raw,
		ImportedAt:     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to store SIE ledger: %w", err)
	}

	log.Printf("SIE ledger imported for %s/%d (%d accounts, %d entries)",
		company, databaseNumber, len(doc.Konto), len(doc.Ver))
	return nil
}
