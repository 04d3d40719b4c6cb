package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_dash/internal/feature/symbollist/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// :memory: は接続ごとに別DBになるため接続を1本に固定する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// Symbolテーブルを作成
	err = db.AutoMigrate(&entity.Symbol{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSymbol はテスト用の銘柄データをデータベースに作成します。
func seedSymbol(t *testing.T, db *gorm.DB, code, name, market string, isActive bool, sortKey int) *entity.Symbol {
	t.Helper()

	symbol := &entity.Symbol{
		Code:     code,
		Name:     name,
		Market:   market,
		IsActive: isActive,
		SortKey:  sortKey,
	}
	err := db.Create(symbol).Error
	require.NoError(t, err, "failed to seed symbol")

	return symbol
}

// updateSymbolActive は銘柄のis_activeフィールドを更新します。
// SQLiteはINSERT時にbooleanの扱いが異なるため、この関数が必要です。
func updateSymbolActive(t *testing.T, db *gorm.DB, symbol *entity.Symbol, isActive bool) {
	t.Helper()
	err := db.Model(symbol).Update("is_active", isActive).Error
	require.NoError(t, err, "failed to update symbol active status")
}

// TestNewSymbolRepository はNewSymbolRepositoryコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewSymbolRepository(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)

	assert.NotNil(t, repo, "repository should not be nil")
	assert.NotNil(t, repo.db, "database connection should not be nil")
}

// TestSymbolGorm_ListActive はListActiveメソッドの各種シナリオをテーブル駆動テストで検証します。
func TestSymbolGorm_ListActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		setupFunc     func(t *testing.T, db *gorm.DB)
		expectedCount int
		expectedCodes []string
		wantErr       bool
	}{
		{
			name: "success: returns active symbols sorted by sort_key",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "MSFT", "Microsoft Corp", "NASDAQ", true, 2)
				seedSymbol(t, db, "AAPL", "Apple Inc", "NASDAQ", true, 1)
				seedSymbol(t, db, "IBM", "International Business Machines", "NYSE", true, 3)
			},
			expectedCount: 3,
			expectedCodes: []string{"AAPL", "MSFT", "IBM"}, // sort_key順
			wantErr:       false,
		},
		{
			name: "success: excludes inactive symbols",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "AAPL", "Apple Inc", "NASDAQ", true, 1)
				inactiveSymbol := seedSymbol(t, db, "MSFT", "Microsoft Corp", "NASDAQ", true, 2)
				updateSymbolActive(t, db, inactiveSymbol, false) // Set to inactive
				seedSymbol(t, db, "IBM", "International Business Machines", "NYSE", true, 3)
			},
			expectedCount: 2,
			expectedCodes: []string{"AAPL", "IBM"},
			wantErr:       false,
		},
		{
			name: "success: returns empty list when no symbols",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				// No symbols seeded
			},
			expectedCount: 0,
			expectedCodes: []string{},
			wantErr:       false,
		},
		{
			name: "success: returns empty list when all symbols are inactive",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				s1 := seedSymbol(t, db, "AAPL", "Apple Inc", "NASDAQ", true, 1)
				updateSymbolActive(t, db, s1, false)
				s2 := seedSymbol(t, db, "MSFT", "Microsoft Corp", "NASDAQ", true, 2)
				updateSymbolActive(t, db, s2, false)
			},
			expectedCount: 0,
			expectedCodes: []string{},
			wantErr:       false,
		},
		{
			name: "success: returns single active symbol",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "AAPL", "Apple Inc", "NASDAQ", true, 1)
			},
			expectedCount: 1,
			expectedCodes: []string{"AAPL"},
			wantErr:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewSymbolRepository(db)

			if tt.setupFunc != nil {
				tt.setupFunc(t, db)
			}

			symbols, err := repo.ListActive(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, symbols, tt.expectedCount)

				// 順序とコードを検証
				for i, expectedCode := range tt.expectedCodes {
					assert.Equal(t, expectedCode, symbols[i].Code)
				}
			}
		})
	}
}

// TestSymbolGorm_ListActive_FieldValues はListActiveが返す銘柄の全フィールド値が正しいことを検証します。
func TestSymbolGorm_ListActive_FieldValues(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)

	// 全フィールドを持つ銘柄をシード
	expected := seedSymbol(t, db, "AAPL", "Apple Inc", "NASDAQ Global Select", true, 42)

	symbols, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, symbols, 1)

	symbol := symbols[0]
	assert.Equal(t, expected.ID, symbol.ID)
	assert.Equal(t, "AAPL", symbol.Code)
	assert.Equal(t, "Apple Inc", symbol.Name)
	assert.Equal(t, "NASDAQ Global Select", symbol.Market)
	assert.True(t, symbol.IsActive)
	assert.Equal(t, 42, symbol.SortKey)
	assert.False(t, symbol.UpdatedAt.IsZero(), "UpdatedAt should be set")
}

// TestSymbolGorm_ContextCancellation はコンテキストがキャンセルされた場合の動作を検証します。
func TestSymbolGorm_ContextCancellation(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)

	seedSymbol(t, db, "AAPL", "Apple Inc", "NASDAQ", true, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel context immediately

	// 注意: SQLiteはコンテキストキャンセルを尊重しない場合がありますが、
	// このテストはコンテキストが正しく伝播されることを確認します
	_, err := repo.ListActive(ctx)
	// インメモリSQLiteはキャンセルされたコンテキストで常にエラーを返すとは限りません
	// このテストは主にコンテキストが正しく渡されることを検証します
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

// TestSymbolGorm_UpsertAll はcodeをキーにした登録・更新と is_active の反映を検証します。
func TestSymbolGorm_UpsertAll(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)
	ctx := context.Background()

	seedSymbol(t, db, "AAPL", "Apple", "NASDAQ", true, 5)

	err := repo.UpsertAll(ctx, []entity.Symbol{
		{Code: "AAPL", Name: "Apple Inc", Market: "NASDAQ", IsActive: true, SortKey: 1},
		{Code: "MSFT", Name: "Microsoft Corp", Market: "NASDAQ", IsActive: true, SortKey: 2},
		{Code: "TWTR", Name: "Twitter", Market: "NYSE", IsActive: false, SortKey: 3},
	})
	require.NoError(t, err)

	var all []entity.Symbol
	require.NoError(t, db.Order("sort_key ASC").Find(&all).Error)
	require.Len(t, all, 3)
	assert.Equal(t, "Apple Inc", all[0].Name)
	assert.Equal(t, 1, all[0].SortKey)
	assert.False(t, all[2].IsActive)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "AAPL", active[0].Code)
	assert.Equal(t, "MSFT", active[1].Code)

	// 再投入で無効化された銘柄を有効化できる
	require.NoError(t, repo.UpsertAll(ctx, []entity.Symbol{{Code: "TWTR", Name: "Twitter", Market: "NYSE", IsActive: true, SortKey: 3}}))
	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

// TestSymbolGorm_UpsertAll_Empty は空の入力でDBに触れないことを検証します。
func TestSymbolGorm_UpsertAll_Empty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)

	require.NoError(t, repo.UpsertAll(context.Background(), nil))

	var count int64
	require.NoError(t, db.Model(&entity.Symbol{}).Count(&count).Error)
	assert.Zero(t, count)
}
