// internal/analyzer/fallback.go
package analyzer

import "semantix-api/internal/models"

// FallbackSummary is the fixed summary text of the fallback document.
const FallbackSummary = "产品描述包含基本信息，但缺乏特定使用场景和结构化数据。需要优化以提高 AI 搜索可见性。"

// FallbackResponse returns the static, schema-valid analysis document served
// whenever the live call is unconfigured or fails. Each call returns a fresh
// value so callers can never mutate a shared copy; repeated failures always
// yield an identical document.
func FallbackResponse() *models.AnalysisResponse {
	return &models.AnalysisResponse{
		GCOScore:        75,
		AnalysisSummary: FallbackSummary,
		MissingElements: []string{
			"Missing specific usage scenarios",
			"Missing structured fact table",
			"Missing FAQ section",
		},
		OptimizedStructure: models.OptimizedStructure{
			FactTable: []models.FactItem{
				{Key: "Material", Value: "100% Organic Cotton"},
				{Key: "Size", Value: "S, M, L, XL"},
				{Key: "Color", Value: "Black, White, Gray"},
				{Key: "Care Instructions", Value: "Machine wash cold, tumble dry low"},
				{Key: "Origin", Value: "Made in USA"},
			},
			Scenarios: []models.ScenarioItem{
				{
					Scenario:  "Daily Casual Wear",
					PainPoint: "Uncomfortable fabric for all-day wear",
					Solution:  "Soft organic cotton provides breathability and comfort for extended use",
				},
				{
					Scenario:  "Workout Sessions",
					PainPoint: "Clothing that doesn't wick away sweat",
					Solution:  "Moisture-wicking properties keep you dry during intense workouts",
				},
			},
			FAQ: []models.FAQItem{
				{
					Question: "Is this shirt shrink-resistant?",
					Answer:   "Yes, the fabric is pre-shrunk to maintain its size after washing",
				},
				{
					Question: "Can I iron this shirt?",
					Answer:   "Yes, you can iron it on low heat setting",
				},
			},
		},
	}
}
