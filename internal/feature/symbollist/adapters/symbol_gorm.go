// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_dash/internal/feature/symbollist/domain/entity"
	"stock_dash/internal/feature/symbollist/usecase"
)

// symbolGorm はSymbolRepositoryインターフェースのGORM実装です。
// PostgreSQLとSQLiteのどちらでも動作します。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// UpsertAll はcodeをキーに銘柄を一括で登録・更新します。
func (r *symbolGorm) UpsertAll(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "market", "sort_key", "updated_at"}),
		}).Create(&symbols).Error; err != nil {
			return err
		}

		// is_active は default:true のため、false はINSERT時に反映されない
		active := make([]string, 0, len(symbols))
		inactive := make([]string, 0)
		for _, s := range symbols {
			if s.IsActive {
				active = append(active, s.Code)
			} else {
				inactive = append(inactive, s.Code)
			}
		}
		if len(active) > 0 {
			if err := tx.Model(&entity.Symbol{}).Where("code IN ?", active).Update("is_active", true).Error; err != nil {
				return err
			}
		}
		if len(inactive) > 0 {
			if err := tx.Model(&entity.Symbol{}).Where("code IN ?", inactive).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
