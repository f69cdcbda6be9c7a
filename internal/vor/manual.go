package vor

import (
	"fmt"
	"strconv"
	"strings"
)

// ManualScore is the response for ad-hoc scoring of a single venue's
// numbers, typically pasted from a spreadsheet.
type ManualScore struct {
	Venue            string  `json:"venue"`
	Score            float64 `json:"score"`
	RecommendedTime1 string  `json:"recommended_time_1"`
	RecommendedTime2 string  `json:"recommended_time_2"`
}

// ScoreManual scores one venue from raw field values. Percent fields
// accept spreadsheet formatting like "62.5%"; CPA accepts "$61.20".
func ScoreManual(venue string, cpa, fulfillment, attendance interface{}) (*ManualScore, error) {
	cpaVal, err := coerceFloat(cpa)
	if err != nil {
		return nil, fmt.Errorf("invalid cpa: %w", err)
	}
	fulfillVal, err := coerceFloat(fulfillment)
	if err != nil {
		return nil, fmt.Errorf("invalid fulfillment_percent: %w", err)
	}
	attendVal, err := coerceFloat(attendance)
	if err != nil {
		return nil, fmt.Errorf("invalid attendance_rate: %w", err)
	}

	if venue == "" {
		venue = "Unknown"
	}

	return &ManualScore{
		Venue:            venue,
		Score:            round2(Score(&cpaVal, &fulfillVal, &attendVal)),
		RecommendedTime1: "11:00 AM Monday",
		RecommendedTime2: "6:30 PM Tuesday",
	}, nil
}

// coerceFloat accepts the numeric shapes JSON and spreadsheets produce:
// numbers, or strings with optional "$", "%" and comma formatting.
func coerceFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case string:
		s := strings.TrimSpace(val)
		s = strings.TrimPrefix(s, "$")
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as a number", val)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("value is missing")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
