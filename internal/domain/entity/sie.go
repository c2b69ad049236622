package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SIEData is one imported SIE accounting ledger, stored as the parsed
// JSON document produced by the import pipeline. A company can have
// several ledgers distinguished by database number.
type SIEData struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyName    string         `gorm:"size:255;not null;index:idx_sie_company_db" json:"company_name"`
	DatabaseNumber int            `gorm:"not null;index:idx_sie_company_db" json:"database_number"`
	FiscalYear     string         `gorm:"size:16" json:"fiscal_year,omitempty"`
	SIEJSON        []byte         `gorm:"type:jsonb;not null" json:"-"`
	ImportedAt     time.Time      `json:"imported_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new SIE data row
func (s *SIEData) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SIEData model
func (SIEData) TableName() string {
	return "sie_data"
}

// SIEDocument is the parsed ledger JSON held in SIEData.SIEJSON.
// Field names follow the SIE standard's Swedish labels.
type SIEDocument struct {
	Konto []SIEAccount      `json:"konto"` // chart of accounts
	IB    []SIEBalance      `json:"ib"`    // opening balances
	UB    []SIEBalance      `json:"ub"`    // closing balances
	Ver   []SIEJournalEntry `json:"ver"`   // journal entries
}

// SIEAccount is one account in the chart of accounts.
type SIEAccount struct {
	Number int    `json:"nr"`
	Name   string `json:"namn"`
}

// SIEBalance is an opening or closing balance for one account.
type SIEBalance struct {
	Account int             `json:"konto"`
	Balance decimal.Decimal `json:"saldo"`
}

// SIEJournalEntry is one verification with its transaction rows.
type SIEJournalEntry struct {
	Series       string           `json:"serie"`
	Number       int              `json:"vernr"`
	Date         string           `json:"verdatum"` // YYYY-MM-DD
	Text         string           `json:"vertext"`
	Transactions []SIETransaction `json:"trans"`
}

// SIETransaction is one row of a journal entry.
type SIETransaction struct {
	Account int             `json:"kontonr"`
	Amount  decimal.Decimal `json:"belopp"`
	Date    string          `json:"transdat,omitempty"`
	Text    string          `json:"transtext,omitempty"`
}
