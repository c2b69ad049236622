package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	"github.com/kvittoapp/kvitto-api/internal/domain/repository"
	"github.com/kvittoapp/kvitto-api/pkg/apperror"
)

// LedgerService serves monthly views over an imported SIE ledger
type LedgerService struct {
	sieRepo repository.SIERepository
}

// NewLedgerService creates a new SIE ledger service
func NewLedgerService(sieRepo repository.SIERepository) *LedgerService {
	return &LedgerService{sieRepo: sieRepo}
}

// AccountRow is one account's twelve-month activity
type AccountRow struct {
	Account int               `json:"account"`
	Name    string            `json:"name"`
	Monthly []decimal.Decimal `json:"monthly"`
	Total   decimal.Decimal   `json:"total"`
}

// LedgerOverview is the monthly ledger overview payload
type LedgerOverview struct {
	CompanyName    string       `json:"company_name"`
	DatabaseNumber int          `json:"database_number"`
	FiscalYear     string       `json:"fiscal_year,omitempty"`
	Accounts       []AccountRow `json:"accounts"`
}

// LedgerTransaction is one ledger row with its running balance
type LedgerTransaction struct {
	Date    string          `json:"date"`
	Series  string          `json:"series"`
	Number  int             `json:"number"`
	Text    string          `json:"text"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountDetail is the single-account ledger page payload
type AccountDetail struct {
	Account        int                 `json:"account"`
	Name           string              `json:"name"`
	OpeningBalance decimal.Decimal     `json:"opening_balance"`
	ClosingBalance decimal.Decimal     `json:"closing_balance"`
	Transactions   []LedgerTransaction `json:"transactions"`
}

// loadDocument fetches and decodes the company's imported ledger.
func (s *LedgerService) loadDocument(ctx context.Context, companyName string, databaseNumber int) (*entity.SIEData, *entity.SIEDocument, error) {
	row, err := s.sieRepo.GetByCompany(ctx, companyName, databaseNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if row == nil {
		return nil, nil, apperror.NewNotFoundError("Ledger")
	}

	var doc entity.SIEDocument
	if err := json.Unmarshal(row.SIEJSON, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode ledger %s/%d: %w", companyName, databaseNumber, err)
	}
	return row, &doc, nil
}

// monthIndex maps a YYYY-MM-DD ledger date onto a 0-11 month slot.
// Dates outside that shape are dropped rather than misfiled.
func monthIndex(date string) (int, bool) {
	if len(date) < 7 || date[4] != '-' {
		return 0, false
	}
	m := 0
	for _, c := range date[5:7] {
		if c < '0' || c > '9' {
			return 0, false
		}
		m = m*10 + int(c-'0')
	}
	if m < 1 || m > 12 {
		return 0, false
	}
	return m - 1, true
}

// rowDate is the effective date of one transaction row: its own date
// when present, otherwise the journal entry's.
func rowDate(entry entity.SIEJournalEntry, t entity.SIETransaction) string {
	if t.Date != "" {
		return t.Date
	}
	return entry.Date
}

// MonthlyOverview sums each account's journal rows into twelve monthly
// columns. Accounts with no activity are not listed.
func (s *LedgerService) MonthlyOverview(ctx context.Context, companyName string, databaseNumber int) (*LedgerOverview, error) {
	row, doc, err := s.loadDocument(ctx, companyName, databaseNumber)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(doc.Konto))
	for _, a := range doc.Konto {
		names[a.Number] = a.Name
	}

	monthly := make(map[int][]decimal.Decimal)
	for _, entry := range doc.Ver {
		for _, t := range entry.Transactions {
			slot, ok := monthIndex(rowDate(entry, t))
			if !ok {
				continue
			}
			cols, seen := monthly[t.Account]
			if !seen {
				cols = make([]decimal.Decimal, 12)
			}
			cols[slot] = cols[slot].Add(t.Amount)
			monthly[t.Account] = cols
		}
	}

	accounts := make([]AccountRow, 0, len(monthly))
	for account, cols := range monthly {
		total := decimal.Zero
		for _, v := range cols {
			total = total.Add(v)
		}
		accounts = append(accounts, AccountRow{
			Account: account,
			Name:    names[account],
			Monthly: cols,
			Total:   total,
		})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Account < accounts[j].Account })

	return &LedgerOverview{
		CompanyName:    row.CompanyName,
		DatabaseNumber: row.DatabaseNumber,
		FiscalYear:     row.FiscalYear,
		Accounts:       accounts,
	}, nil
}

// GetAccount returns one account's ledger: the opening balance and its
// rows in date order, each carrying the balance after that row.
func (s *LedgerService) GetAccount(ctx context.Context, companyName string, databaseNumber, account int) (*AccountDetail, error) {
	_, doc, err := s.loadDocument(ctx, companyName, databaseNumber)
	if err != nil {
		return nil, err
	}

	var name string
	known := false
	for _, a := range doc.Konto {
		if a.Number == account {
			name = a.Name
			known = true
			break
		}
	}

	opening := decimal.Zero
	for _, b := range doc.IB {
		if b.Account == account {
			opening = b.Balance
			break
		}
	}

	rows := make([]LedgerTransaction, 0)
	for _, entry := range doc.Ver {
		for _, t := range entry.Transactions {
			if t.Account != account {
				continue
			}
			text := t.Text
			if strings.TrimSpace(text) == "" {
				text = entry.Text
			}
			rows = append(rows, LedgerTransaction{
				Date:   rowDate(entry, t),
				Series: entry.Series,
				Number: entry.Number,
				Text:   text,
				Amount: t.Amount,
			})
		}
	}
	if !known && len(rows) == 0 {
		return nil, apperror.NewNotFoundError("Account")
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	balance := opening
	for i := range rows {
		balance = balance.Add(rows[i].Amount)
		rows[i].Balance = balance
	}

	return &AccountDetail{
		Account:        account,
		Name:           name,
		OpeningBalance: opening,
		ClosingBalance: balance,
		Transactions:   rows,
	}, nil
}
