package mysql

import (
	"context"
	"errors"

	siteDomain "bankledger/internal/domain/siteconfig"

	"gorm.io/gorm"
)

type SiteConfigRepository struct{ db *gorm.DB }

func NewSiteConfigRepository(db *gorm.DB) *SiteConfigRepository {
	return &SiteConfigRepository{db: db}
}

// Get returns the singleton row; callers see gorm.ErrRecordNotFound before
// the row has been seeded.
func (r *SiteConfigRepository) Get(ctx context.Context) (*siteDomain.SiteConfig, error) {
	var out siteDomain.SiteConfig
	res := r.db.WithContext(ctx).Order("id ASC").First(&out)
	return &out, res.Error
}

func (r *SiteConfigRepository) SetBankrupt(ctx context.Context, bankrupt bool, message string) error {
	cfg, err := r.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(&siteDomain.SiteConfig{
				IsBankrupt:    bankrupt,
				StatusMessage: message,
			}).Error
		}
		return err
	}
	cfg.IsBankrupt = bankrupt
	cfg.StatusMessage = message
	return r.db.WithContext(ctx).Save(cfg).Error
}
