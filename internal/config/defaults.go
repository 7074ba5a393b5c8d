package config

import "github.com/oka8489/migiude-ai-v3/internal/domain"

const (
	orderRecordSourceID = "corins-default"
	designDocSourceID   = "design-doc-default"
)

// DefaultOrderRecordSchema is the built-in schema for order records, used to
// seed a fresh registry and as the fallback when no schema is stored.
var DefaultOrderRecordSchema = []domain.SchemaField{
	{Key: "corins_id", Type: domain.FieldTypeString, Description: "登録番号"},
	{Key: "project_name", Type: domain.FieldTypeString, Description: "件名"},
	{Key: "contract_amount", Type: domain.FieldTypeNumber, Description: "請負金額（数値のみ。カンマや円は除く。不明ならnull）"},
	{Key: "start_date", Type: domain.FieldTypeDate, Description: "工期開始（YYYY-MM-DD形式。不明ならnull）"},
	{Key: "end_date", Type: domain.FieldTypeDate, Description: "工期終了（YYYY-MM-DD形式。不明ならnull）"},
	{Key: "location", Type: domain.FieldTypeString, Description: "施工場所"},
	{Key: "client_name", Type: domain.FieldTypeString, Description: "発注機関名"},
	{Key: "contractor_name", Type: domain.FieldTypeString, Description: "請負者名称"},
	{Key: "field", Type: domain.FieldTypeString, Description: "公共事業の分野"},
	{Key: "work_types", Type: domain.FieldTypeArray, Description: "工種（文字列の配列）"},
	{Key: "engineers", Type: domain.FieldTypeArray, Description: `技術者（配列。各要素は {"name": "氏名", "role": "役割"} の形式）`},
	{Key: "summary", Type: domain.FieldTypeString, Description: "工事概要（あれば文字列、なければnull）"},
}

// DefaultDesignDocSchema is the built-in schema for design documents.
var DefaultDesignDocSchema = []domain.SchemaField{
	{Key: "document_title", Type: domain.FieldTypeString, Description: "図書名・タイトル"},
	{Key: "project_name", Type: domain.FieldTypeString, Description: "工事名"},
	{Key: "project_code", Type: domain.FieldTypeString, Description: "工事番号"},
	{Key: "location", Type: domain.FieldTypeString, Description: "工事場所"},
	{Key: "executing_office", Type: domain.FieldTypeString, Description: "執行課所"},
	{Key: "contract_days", Type: domain.FieldTypeNumber, Description: "工期（日数）"},
	{Key: "budget_category", Type: domain.FieldTypeString, Description: "予算科目"},
	{Key: "quantities", Type: domain.FieldTypeArray, Description: "数量（項目・数量・単位の配列）"},
	{Key: "special_specs", Type: domain.FieldTypeString, Description: "特記仕様書の要点"},
}

func defaultParserConfig() domain.ParserConfig {
	return domain.ParserConfig{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 4096,
	}
}

func defaultPolicy() domain.PersistencePolicy {
	return domain.PersistencePolicy{
		Relational:     true,
		Graph:          false,
		Vector:         false,
		RelationalMode: domain.RelationalModeBoth,
	}
}
