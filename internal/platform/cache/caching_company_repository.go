package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dash/internal/feature/company/domain/entity"
	"stock_dash/internal/feature/company/usecase"
)

// DefaultCompanyTTL はプロフィールとロゴURLを保持する既定の期間です。
const DefaultCompanyTTL = 24 * time.Hour

// CachingCompanyRepository は CompanyRepository に Redis キャッシュを被せるデコレーターです。
// エラーはキャッシュしません。
type CachingCompanyRepository struct {
	inner     usecase.CompanyRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CompanyRepository = (*CachingCompanyRepository)(nil)

// NewCachingCompanyRepository は inner をキャッシュ付きでラップします。
// ttl が 0 以下なら DefaultCompanyTTL、namespace が空なら "company" を使います。
func NewCachingCompanyRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CompanyRepository, namespace string) *CachingCompanyRepository {
	if ttl <= 0 {
		ttl = DefaultCompanyTTL
	}
	if namespace == "" {
		namespace = "company"
	}
	return &CachingCompanyRepository{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// GetProfile はキャッシュを確認し、無ければプロバイダーから取得して保存します。
func (c *CachingCompanyRepository) GetProfile(ctx context.Context, symbol string) (*entity.Company, error) {
	if c.rdb == nil {
		return c.inner.GetProfile(ctx, symbol)
	}

	key := c.key("profile", symbol)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Company
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// GetLogoURL はロゴURLをキャッシュ経由で返します。空のURLもキャッシュします。
func (c *CachingCompanyRepository) GetLogoURL(ctx context.Context, symbol string) (string, error) {
	if c.rdb == nil {
		return c.inner.GetLogoURL(ctx, symbol)
	}

	key := c.key("logo", symbol)
	if v, err := c.rdb.Get(ctx, key).Result(); err == nil {
		return v, nil
	}

	out, err := c.inner.GetLogoURL(ctx, symbol)
	if err != nil {
		return "", err
	}
	_ = c.rdb.Set(ctx, key, out, c.ttl).Err()
	return out, nil
}

func (c *CachingCompanyRepository) key(kind, symbol string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, kind, safe(symbol))
}
