package repository

import (
	"context"
	"errors"

	"github.com/kvittoapp/kvitto-api/internal/domain/entity"
	domainRepo "github.com/kvittoapp/kvitto-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sieRepository struct {
	db *gorm.DB
}

// NewSIERepository creates a new SIE ledger repository
func NewSIERepository(db *gorm.DB) domainRepo.SIERepository {
	return &sieRepository{db: db}
}

func (r *sieRepository) GetByCompany(ctx context.Context, companyName string, databaseNumber int) (*entity.SIEData, error) {
	var data entity.SIEData
	err := r.db.WithContext(ctx).
		First(&data, "company_name = ? AND database_number = ?", companyName, databaseNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &data, err
}

func (r *sieRepository) Save(ctx context.Context, data *entity.SIEData) error {
	existing, err := r.GetByCompany(ctx, data.CompanyName, data.DatabaseNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		data.ID = existing.ID
		return r.db.WithContext(ctx).Save(data).Error
	}
	return r.db.WithContext(ctx).Create(data).Error
}
