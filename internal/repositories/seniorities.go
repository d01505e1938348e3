package repositories

import (
	"context"
	"strings"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/maxaizer/jobhub-importer/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Seniorities struct {
	db *gorm.DB
}

func NewSenioritiesRepository(db *gorm.DB) *Seniorities {
	return &Seniorities{db: db}
}

func (repo *Seniorities) Upsert(ctx context.Context, level string) (uint, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = string(models.SeniorityUnknown)
	}

	db := repo.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "level"}}, DoNothing: true}).
		Create(&entities.SeniorityLevel{Level: level}).Error; err != nil {
		return 0, err
	}

	var stored entities.SeniorityLevel
	if err := db.First(&stored, "level = ?", level).Error; err != nil {
		return 0, err
	}
	return stored.ID, nil
}
