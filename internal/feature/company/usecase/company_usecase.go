// Package usecase は企業情報取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stock_dash/internal/feature/company/domain/entity"
)

const (
	// IntroName はティッカー未入力時に表示するタイトルです。
	IntroName = "Stock Prediction"
	// IntroDescription はティッカー未入力時に表示する説明文です。
	IntroDescription = "This is a single-page web application which shows company information " +
		"(logo, registered name and description) and stock plots based on the stock code given by the user. " +
		"It also contains a regression model that predicts stock prices for the number of days entered by the user."
	// IntroLogoURL はティッカー未入力時に表示する画像です。
	IntroLogoURL = "https://www.aegonlife.com/insurance-investment-knowledge/wp-content/uploads/2019/08/shutterstock_601834022.jpg"
)

// CompanyRepository は企業プロフィールを取得するリポジトリのインターフェイスです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CompanyRepository interface {
	// GetProfile は企業のプロフィールを返します。LogoURLは設定されません。
	GetProfile(ctx context.Context, symbol string) (*entity.Company, error)
	// GetLogoURL は企業ロゴのURLを返します。
	GetLogoURL(ctx context.Context, symbol string) (string, error)
}

// Describer は企業名から短い事業概要を生成します。
type Describer interface {
	Describe(ctx context.Context, companyName string) (string, error)
}

// companyUsecase は企業情報取得のユースケースを定義します。
type companyUsecase struct {
	repo      CompanyRepository
	describer Describer // nil の場合は生成しない
}

// NewCompanyUsecase はcompanyUsecaseの新しいインスタンスを生成します。
// describer は nil でも構いません。
func NewCompanyUsecase(repo CompanyRepository, describer Describer) *companyUsecase {
	return &companyUsecase{repo: repo, describer: describer}
}

// Intro はティッカー未入力時のプレースホルダーを返します。
func (u *companyUsecase) Intro() entity.Company {
	return entity.Company{
		Name:        IntroName,
		Description: IntroDescription,
		LogoURL:     IntroLogoURL,
	}
}

// Lookup は銘柄の企業名・概要・ロゴを取得します。
// 既知の銘柄については Name と Description が必ず空でない値になります。
func (u *companyUsecase) Lookup(ctx context.Context, symbol string) (*entity.Company, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptyTicker
	}

	company, err := u.repo.GetProfile(ctx, symbol)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, symbol)
	}
	company.Symbol = symbol
	if company.Name == "" {
		company.Name = symbol
	}

	// ロゴ取得は失敗しても致命的ではない
	logo, err := u.repo.GetLogoURL(ctx, symbol)
	if err != nil {
		slog.Warn("failed to fetch company logo", "symbol", symbol, "error", err)
	}
	company.LogoURL = logo

	if company.Description == "" && u.describer != nil {
		desc, err := u.describer.Describe(ctx, company.Name)
		if err != nil {
			slog.Warn("failed to generate company description", "symbol", symbol, "error", err)
		}
		company.Description = strings.TrimSpace(desc)
	}
	if company.Description == "" {
		company.Description = fmt.Sprintf("No business summary is available for %s.", company.Name)
	}
	return company, nil
}
