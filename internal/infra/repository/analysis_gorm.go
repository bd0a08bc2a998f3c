package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/personal-color/internal/domain"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

type AnalysisGormRepository struct {
	db *gorm.DB
}

func NewAnalysisGormRepository(db *gorm.DB) *AnalysisGormRepository {
	return &AnalysisGormRepository{db: db}
}

func (r *AnalysisGormRepository) Create(
	ctx context.Context,
	a *models.ColorAnalysis,
) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *AnalysisGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.ColorAnalysis, error) {

	var a models.ColorAnalysis
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AnalysisGormRepository) Latest(
	ctx context.Context,
	userID uint,
) (*models.ColorAnalysis, error) {

	var a models.ColorAnalysis
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AnalysisGormRepository) ListByUser(
	ctx context.Context,
	userID uint,
	offset int,
	limit int,
) ([]models.ColorAnalysis, int64, error) {

	// Session lets the count and the page build separate statements.
	q := r.db.WithContext(ctx).
		Model(&models.ColorAnalysis{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.ColorAnalysis
	if err := q.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *AnalysisGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.ColorAnalysis{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AnalysisGormRepository) CountByColorType(
	ctx context.Context,
	userID uint,
) (map[models.ColorType]int64, error) {

	var rows []struct {
		ColorType models.ColorType
		Count     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ColorAnalysis{}).
		Select("color_type, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("color_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[models.ColorType]int64, len(rows))
	for _, row := range rows {
		out[row.ColorType] = row.Count
	}
	return out, nil
}
