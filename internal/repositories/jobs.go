package repositories

import (
	"context"
	"errors"

	"github.com/maxaizer/jobhub-importer/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) ExistsByLink(ctx context.Context, link string) (bool, error) {
	var job entities.Job
	err := repo.db.WithContext(ctx).Select("id").First(&job, "link = ?", link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert stores the job unless its link is already known. inserted is false on a
// link conflict, which is not an error.
func (repo *Jobs) Insert(ctx context.Context, job entities.Job) (id uint, inserted bool, err error) {
	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "link"}}, DoNothing: true}).
		Create(&job)
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}
	return job.ID, true, nil
}

func (repo *Jobs) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&entities.Job{}).Count(&count).Error
	return count, err
}
