package repositories

import (
	"context"
	"errors"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/maxaizer/jobhub-importer/internal/entities"
	"gorm.io/gorm"
)

type Companies struct {
	db *gorm.DB
}

func NewCompaniesRepository(db *gorm.DB) *Companies {
	return &Companies{db: db}
}

// Upsert creates the company or refreshes the fields the caller provided and returns
// its id. A company without a usable name yields id 0.
func (repo *Companies) Upsert(ctx context.Context, company models.Company) (uint, error) {
	key := entities.NormalizeCompanyName(company.Name)
	if key == "" {
		return 0, nil
	}

	var id uint
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Company
		err := tx.First(&existing, "normalized_name = ?", key).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created := entities.Company{
				Name:           company.Name,
				NormalizedName: key,
				Logo:           company.Logo,
				LogoURL:        company.Logo,
				Description:    company.Description,
				Website:        company.Website,
				Industry:       company.Industry,
				Size:           company.Size,
				Location:       company.Location,
				TrustScore:     80,
			}
			if err = tx.Create(&created).Error; err != nil {
				return err
			}
			id = created.ID
			return nil
		}
		if err != nil {
			return err
		}

		id = existing.ID
		updates := updatedCompanyFields(company)
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&entities.Company{}).Where("id = ?", existing.ID).Updates(updates).Error
	})
	return id, err
}

func updatedCompanyFields(company models.Company) map[string]any {
	updates := map[string]any{"name": company.Name}
	if company.Logo != "" {
		updates["logo"] = company.Logo
		updates["logo_url"] = company.Logo
	}
	if company.Description != "" {
		updates["description"] = company.Description
	}
	if company.Website != "" {
		updates["website"] = company.Website
	}
	if company.Industry != "" {
		updates["industry"] = company.Industry
	}
	if company.Size != "" {
		updates["size"] = company.Size
	}
	if company.Location != "" {
		updates["location"] = company.Location
	}
	return updates
}
