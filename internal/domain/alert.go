package domain

import "time"

const (
	// alertActivationThreshold gives roughly a 30% chance of an alert per draw.
	alertActivationThreshold = 0.7
	// alertCandidateThreshold is the minimum score (exclusive) for a hazard
	// to be considered for an alert.
	alertCandidateThreshold = 50
	alertValidity           = 6 * time.Hour
	alertBaseConfidence     = 75
	alertConfidenceSpread   = 20

	// AlertSource is the forecasting authority credited on every alert.
	AlertSource = "Trung tâm Dự báo Khí tượng Thủy văn"

	// TimeOfDayLayout renders alert start/end times.
	TimeOfDayLayout = "15:04:05"
)

// Severity labels used by alerts and historical events.
const (
	SeverityDangerous = "Nguy hiểm"
	SeverityModerate  = "Trung bình"
	SeverityHigh      = "Cao"
	SeverityLow       = "Thấp"
)

// ActiveAlert is a synthesized warning for the current refresh cycle.
type ActiveAlert struct {
	Type            HazardKind `json:"type"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Severity        string     `json:"severity"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Area            string     `json:"area"`
	Source          string     `json:"source"`
	Confidence      int        `json:"confidence"`
	Recommendations []string   `json:"recommendations"`
}

type alertTemplate struct {
	title           string
	description     string
	severity        func(risk RiskScoreSet) string
	recommendations []string
}

func fixedSeverity(label string) func(RiskScoreSet) string {
	return func(RiskScoreSet) string { return label }
}

// alertTemplates deliberately omits thunderstorm, landslide and drought.
// Those kinds can be drawn as candidates but never produce an alert.
var alertTemplates = map[HazardKind]alertTemplate{
	HazardFlood: {
		title:       "Cảnh báo ngập lụt",
		description: "Mực nước sông đang dâng cao, có nguy cơ ngập lụt tại các khu vực thấp trũng.",
		severity: func(risk RiskScoreSet) string {
			if risk.Score(HazardFlood) > 70 {
				return SeverityDangerous
			}
			return SeverityModerate
		},
		recommendations: []string{
			"Di chuyển đến nơi cao hơn",
			"Chuẩn bị đồ dùng thiết yếu",
			"Theo dõi tin tức cập nhật",
			"Tránh di chuyển qua vùng ngập",
		},
	},
	HazardStorm: {
		title:       "Cảnh báo bão",
		description: "Có bão đang hình thành và di chuyển về phía đất liền.",
		severity:    fixedSeverity(SeverityDangerous),
		recommendations: []string{
			"Gia cố nhà cửa",
			"Dự trữ thực phẩm và nước",
			"Tránh ra ngoài khi bão đổ bộ",
			"Chuẩn bị đèn pin và pin dự phòng",
		},
	},
	HazardHeavyRain: {
		title:       "Cảnh báo mưa lớn",
		description: "Dự báo có mưa to đến rất to trong 6-12 giờ tới.",
		severity:    fixedSeverity(SeverityModerate),
		recommendations: []string{
			"Hạn chế di chuyển không cần thiết",
			"Kiểm tra hệ thống thoát nước",
			"Chuẩn bị ô, áo mưa",
			"Theo dõi cảnh báo thời tiết",
		},
	},
	HazardHeatWave: {
		title:       "Cảnh báo nắng nóng",
		description: "Nhiệt độ có thể lên tới 38-40°C, kéo dài nhiều ngày.",
		severity:    fixedSeverity(SeverityModerate),
		recommendations: []string{
			"Hạn chế ra ngoài vào giữa trưa",
			"Uống nhiều nước",
			"Mặc quần áo thoáng mát",
			"Sử dụng kem chống nắng",
		},
	},
}

// HasAlertTemplate reports whether kind can ever surface as an alert.
func HasAlertTemplate(kind HazardKind) bool {
	_, ok := alertTemplates[kind]
	return ok
}

// SynthesizeAlerts returns zero or one alert for the location.
//
// Draw order from rng: activation roll, candidate pick, confidence. A roll
// at or below 0.7 ends the evaluation with no further draws.
func SynthesizeAlerts(lat, lon float64, risk RiskScoreSet, rng RandomSource, now time.Time) []ActiveAlert {
	if rng.Float64() <= alertActivationThreshold {
		return nil
	}

	candidates := risk.Above(alertCandidateThreshold)
	if len(candidates) == 0 {
		return nil
	}

	kind := candidates[intn(rng, len(candidates))]
	tmpl, ok := alertTemplates[kind]
	if !ok {
		return nil
	}

	recs := make([]string, len(tmpl.recommendations))
	copy(recs, tmpl.recommendations)

	return []ActiveAlert{{
		Type:            kind,
		Title:           tmpl.title,
		Description:     tmpl.description,
		Severity:        tmpl.severity(risk),
		StartTime:       now.Format(TimeOfDayLayout),
		EndTime:         now.Add(alertValidity).Format(TimeOfDayLayout),
		Area:            ClassifyRegion(lat, lon).Label(),
		Source:          AlertSource,
		Confidence:      alertBaseConfidence + intn(rng, alertConfidenceSpread),
		Recommendations: recs,
	}}
}
