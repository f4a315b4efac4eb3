package registry

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (r *Gorm) Get(ctx context.Context, id string) (*model.File, error) {
	var f model.File

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&f).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.FileNotFound, err)
		}

		return nil, apperr.Wrap(apperr.Internal, err)
	}

	return &f, nil
}

func (r *Gorm) Create(ctx context.Context, f *model.File) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}

		return tx.Create(&model.FileUser{
			ID:     uuid.NewString(),
			UserID: f.OwnerID,
			FileID: f.ID,
		}).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.Internal, err)
	}

	return nil
}

func (r *Gorm) Update(ctx context.Context, f *model.File) error {
	res := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ?", f.ID).
		Updates(map[string]any{
			"name":   f.Name,
			"public": f.Public,
		})
	if res.Error != nil {
		return apperr.Wrap(apperr.Internal, res.Error)
	}

	if res.RowsAffected == 0 {
		return apperr.New(apperr.FileNotFound)
	}

	return nil
}

func (r *Gorm) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.File{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("file_id = ?", id).Delete(&model.FileUser{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.FileNotFound, err)
		}

		return apperr.Wrap(apperr.Internal, err)
	}

	return nil
}

func (r *Gorm) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]model.File, int64, error) {
	var files []model.File
	var count int64

	q := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("owner_id = ?", ownerID)

	if err := q.Count(&count).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, err)
	}

	err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&files).
		Error
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, err)
	}

	return files, count, nil
}

func (r *Gorm) ListOrphans(ctx context.Context) ([]model.File, error) {
	var files []model.File

	err := r.db.WithContext(ctx).
		Model(&model.File{}).
		Joins("LEFT JOIN file_users ON file_users.file_id = files.id").
		Where("file_users.id IS NULL").
		Find(&files).
		Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err)
	}

	return files, nil
}

func (r *Gorm) CountOwnershipLinks(ctx context.Context, id string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.FileUser{}).
		Where("file_id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, err)
	}

	return count, nil
}

func (r *Gorm) UsedStorage(ctx context.Context, ownerID string) (int64, error) {
	var used int64

	err := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(size), 0)").
		Scan(&used).
		Error
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, err)
	}

	return used, nil
}
