// Package gemini はGoogle Gemini APIを使用した企業概要の生成クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"stock_dash/internal/feature/company/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	promptTemplate = "Write a neutral two or three sentence business summary of the company %q. " +
		"Describe what it does and where it operates. Do not give investment advice. Reply with plain text only."
)

var errEmptyResponse = errors.New("gemini returned an empty response")

// GeminiDescriber はGoogle Gemini APIを使用して企業概要を生成します。
type GeminiDescriber struct {
	generate func(ctx context.Context, prompt string) (string, error)
}

// GeminiDescriberがDescriberを実装していることをコンパイル時に検証します。
var _ usecase.Describer = (*GeminiDescriber)(nil)

// NewGeminiDescriber はADCを使用してGeminiDescriberの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION
// もしくは GOOGLE_API_KEY が必要です。
func NewGeminiDescriber(ctx context.Context, model string) (*GeminiDescriber, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiDescriber{
		generate: func(ctx context.Context, prompt string) (string, error) {
			resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		},
	}, nil
}

// Describe は企業名から短い事業概要を生成します。
func (g *GeminiDescriber) Describe(ctx context.Context, companyName string) (string, error) {
	text, err := g.generate(ctx, buildPrompt(companyName))
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

func buildPrompt(companyName string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(companyName))
}
