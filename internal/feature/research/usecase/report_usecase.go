package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/domain/entity"
)

const (
	// DefaultReportListLimit は一覧取得時の既定件数です。
	DefaultReportListLimit = 20
	// MaxReportListLimit は一覧取得時の最大件数です。
	MaxReportListLimit = 100
)

// ReportRepository は保存済みレポートの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ReportRepository interface {
	// Create は新しいレポートを保存します。
	Create(ctx context.Context, report *entity.SavedReport) error

	// ListByUser は指定ユーザーのレポートを新しい順に最大limit件返します。
	ListByUser(ctx context.Context, userID uint, limit int) ([]entity.SavedReport, error)

	// FindByID はIDとユーザーIDが一致するレポートを返します。
	// 存在しない場合は domain.ErrReportNotFound を返します。
	FindByID(ctx context.Context, userID uint, id string) (*entity.SavedReport, error)

	// Delete はIDとユーザーIDが一致するレポートを削除します。
	// 存在しない場合は domain.ErrReportNotFound を返します。
	Delete(ctx context.Context, userID uint, id string) error
}

// reportUsecase は保存済みレポートのビジネスロジックを実装します。
type reportUsecase struct {
	reports ReportRepository
	now     func() time.Time
	newID   func() string
}

// NewReportUsecase はreportUsecaseの新しいインスタンスを生成します。
func NewReportUsecase(reports ReportRepository) *reportUsecase {
	return &reportUsecase{
		reports: reports,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Save は分析結果をユーザーのレポートとして保存します。
func (u *reportUsecase) Save(ctx context.Context, userID uint, report *entity.SavedReport) (*entity.SavedReport, error) {
	ticker, err := entity.ParseTicker(report.Ticker.String())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(report.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidInput)
	}
	if err := validate.Struct(report.Brief); err != nil {
		return nil, fmt.Errorf("%w: brief is incomplete: %v", domain.ErrInvalidInput, err)
	}

	comparables := report.Comparables
	if comparables == nil {
		comparables = []entity.ComparableCompany{}
	}

	saved := &entity.SavedReport{
		ID:          u.newID(),
		UserID:      userID,
		Ticker:      ticker,
		CompanyName: strings.TrimSpace(report.CompanyName),
		Brief:       report.Brief,
		Comparables: comparables,
		CreatedAt:   u.now().UTC(),
	}
	if err := u.reports.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return saved, nil
}

// List はユーザーのレポートを新しい順に返します。limitが0以下なら既定値、上限を超える場合は上限に丸めます。
func (u *reportUsecase) List(ctx context.Context, userID uint, limit int) ([]entity.SavedReport, error) {
	if limit <= 0 {
		limit = DefaultReportListLimit
	}
	if limit > MaxReportListLimit {
		limit = MaxReportListLimit
	}
	reports, err := u.reports.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// Get はユーザー自身のレポートを1件返します。
func (u *reportUsecase) Get(ctx context.Context, userID uint, id string) (*entity.SavedReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrReportNotFound
	}
	return u.reports.FindByID(ctx, userID, id)
}

// Delete はユーザー自身のレポートを削除します。
func (u *reportUsecase) Delete(ctx context.Context, userID uint, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrReportNotFound
	}
	return u.reports.Delete(ctx, userID, id)
}
