package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oka8489/migiude-ai-v3/internal/config"
	"github.com/oka8489/migiude-ai-v3/internal/domain"
	apperrors "github.com/oka8489/migiude-ai-v3/internal/pkg/errors"
	"github.com/oka8489/migiude-ai-v3/internal/platform/anthropic"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
)

// ExtractionService turns free-form document text into the field map a
// source's schema asks for, via a single model completion.
type ExtractionService interface {
	Extract(ctx context.Context, sourceName, text string) (map[string]any, error)
}

type extractionService struct {
	registry config.Registry
	llm      anthropic.Client
	log      *logger.Logger
}

func NewExtractionService(registry config.Registry, llm anthropic.Client, baseLog *logger.Logger) ExtractionService {
	return &extractionService{
		registry: registry,
		llm:      llm,
		log:      baseLog.With("service", "ExtractionService"),
	}
}

func (s *extractionService) Extract(ctx context.Context, sourceName, text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyDocument
	}

	schema := s.registry.GetSchema(sourceName)
	parser := s.registry.GetParserConfig()
	system := systemPrompt(sourceName)
	user := buildExtractionPrompt(schema, text)

	s.log.Info("extracting fields", "source", sourceName, "model", parser.Model, "fields", len(schema))

	raw, err := s.llm.Complete(ctx, parser.Model, parser.MaxTokens, system, user)
	if err != nil {
		return nil, fmt.Errorf("extraction: completion failed: %w", err)
	}

	cleaned := stripCodeFences(raw)
	var fields map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		s.log.Error("extraction output is not valid JSON", "source", sourceName, "error", err)
		return nil, fmt.Errorf("extraction: model returned malformed JSON: %w", err)
	}
	return fields, nil
}

// systemPrompt frames the extraction for the two well-known sources; any
// other source gets the generic framing.
func systemPrompt(sourceName string) string {
	switch sourceName {
	case domain.SourceOrderRecord:
		return "あなたは建設業の工事実績データ（コリンズ登録内容）を解析する専門家です。" +
			"与えられた文書から指定された項目を正確に抽出し、JSON形式で返してください。" +
			"JSON以外の文章は一切出力しないでください。"
	case domain.SourceDesignDoc:
		return "あなたは建設工事の設計図書・特記仕様書を解析する専門家です。" +
			"与えられた文書から指定された項目を正確に抽出し、JSON形式で返してください。" +
			"JSON以外の文章は一切出力しないでください。"
	default:
		return "あなたは建設業の文書を解析する専門家です。" +
			"与えられた文書から指定された項目を正確に抽出し、JSON形式で返してください。" +
			"JSON以外の文章は一切出力しないでください。"
	}
}

// buildExtractionPrompt lists each schema field as "- key: description" with
// a type hint, then appends the document text and output rules.
func buildExtractionPrompt(schema []domain.SchemaField, text string) string {
	var b strings.Builder
	b.WriteString("以下の文書から、次の項目を抽出してください。\n\n## 抽出項目\n")
	for _, f := range schema {
		b.WriteString("- ")
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Description)
		switch f.Type {
		case domain.FieldTypeArray:
			b.WriteString("（配列で返す）")
		case domain.FieldTypeNumber:
			b.WriteString("（数値で返す）")
		case domain.FieldTypeDate:
			b.WriteString("（YYYY/MM/DD形式で返す）")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n## 出力ルール\n")
	b.WriteString("- 項目のキーをそのままJSONのキーとして使うこと\n")
	b.WriteString("- 文書に存在しない項目はnullとすること\n")
	b.WriteString("- JSONオブジェクトのみを出力すること\n")
	b.WriteString("\n## 文書\n")
	b.WriteString(text)
	return b.String()
}

// stripCodeFences unwraps a ```json ... ``` (or bare ```) fenced block if the
// model wrapped its output in one.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
