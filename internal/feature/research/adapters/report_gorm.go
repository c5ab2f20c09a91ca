package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/domain/entity"
	"company_research/internal/feature/research/usecase"
)

// reportGorm はReportRepositoryインターフェースのGORM実装です。
// PostgreSQLとSQLiteの両方で動作します。
type reportGorm struct {
	db *gorm.DB
}

// reportGormがReportRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ReportRepository = (*reportGorm)(nil)

// NewReportGorm は指定されたgorm.DB接続でreportGormの新しいインスタンスを生成します。
func NewReportGorm(db *gorm.DB) *reportGorm {
	return &reportGorm{db: db}
}

// Create はレポートをデータベースに追加します。
func (r *reportGorm) Create(ctx context.Context, report *entity.SavedReport) error {
	m := fromEntity(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	report.CreatedAt = m.CreatedAt
	return nil
}

// ListByUser はユーザーのレポートを作成日時の降順で取得します。
func (r *reportGorm) ListByUser(ctx context.Context, userID uint, limit int) ([]entity.SavedReport, error) {
	var models []ReportModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	reports := make([]entity.SavedReport, 0, len(models))
	for i := range models {
		reports = append(reports, models[i].toEntity())
	}
	return reports, nil
}

// FindByID はIDと所有者が一致するレポートを取得します。
// 見つからない場合、domain.ErrReportNotFoundを返します。
func (r *reportGorm) FindByID(ctx context.Context, userID uint, id string) (*entity.SavedReport, error) {
	var m ReportModel
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	report := m.toEntity()
	return &report, nil
}

// Delete はIDと所有者が一致するレポートを削除します。
// 削除対象がない場合、domain.ErrReportNotFoundを返します。
func (r *reportGorm) Delete(ctx context.Context, userID uint, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&ReportModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}
