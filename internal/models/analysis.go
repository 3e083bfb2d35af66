// internal/models/analysis.go
package models

import "fmt"

// AnalysisRequest is the inbound payload for POST /analyze. OriginalText is a
// pointer so the handler can tell an absent field from an empty description:
// empty is a valid input, absence is not.
type AnalysisRequest struct {
	OriginalText *string `json:"original_text"`
}

// FactItem is one key/value specification pair in the fact table.
type FactItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ScenarioItem describes one usage scenario with its pain point and solution.
type ScenarioItem struct {
	Scenario  string `json:"scenario"`
	PainPoint string `json:"pain_point"`
	Solution  string `json:"solution"`
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// OptimizedStructure is the rewritten, structured form of the description.
type OptimizedStructure struct {
	FactTable []FactItem     `json:"fact_table"`
	Scenarios []ScenarioItem `json:"scenarios"`
	FAQ       []FAQItem      `json:"faq"`
}

// AnalysisResponse is the full analysis document returned to the caller.
// Every instance leaving the service, live or fallback, satisfies Validate.
type AnalysisResponse struct {
	GCOScore           int                `json:"gco_score"`
	AnalysisSummary    string             `json:"analysis_summary"`
	MissingElements    []string           `json:"missing_elements"`
	OptimizedStructure OptimizedStructure `json:"optimized_structure"`
}

// Validate checks the field constraints the response contract promises.
func (r *AnalysisResponse) Validate() error {
	if r.GCOScore < 0 || r.GCOScore > 100 {
		return fmt.Errorf("gco_score %d outside [0,100]", r.GCOScore)
	}
	if r.MissingElements == nil {
		return fmt.Errorf("missing_elements is required")
	}
	if r.OptimizedStructure.FactTable == nil {
		return fmt.Errorf("optimized_structure.fact_table is required")
	}
	if r.OptimizedStructure.Scenarios == nil {
		return fmt.Errorf("optimized_structure.scenarios is required")
	}
	if r.OptimizedStructure.FAQ == nil {
		return fmt.Errorf("optimized_structure.faq is required")
	}
	return nil
}
