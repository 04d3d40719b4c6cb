// Package handler はcompanyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dash/internal/api"
	"stock_dash/internal/feature/company/domain/entity"
)

// CompanyUsecase は企業情報取得のユースケースインターフェースを定義します。
type CompanyUsecase interface {
	Lookup(ctx context.Context, symbol string) (*entity.Company, error)
}

// CompanyHandler は企業情報のHTTPリクエストを処理します。
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler はCompanyHandlerの新しいインスタンスを生成します。
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// GetCompany は銘柄の企業名・概要・ロゴを返します。
//
// エンドポイント例:
// GET /api/v1/company/AAPL
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.uc.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(*company))
}

// ToResponse はエンティティをレスポンス形式に変換します。
func ToResponse(c entity.Company) api.CompanyResponse {
	return api.CompanyResponse{
		Symbol:      c.Symbol,
		Name:        c.Name,
		Description: c.Description,
		LogoURL:     c.LogoURL,
		Exchange:    c.Exchange,
		Sector:      c.Sector,
		Website:     c.Website,
	}
}
