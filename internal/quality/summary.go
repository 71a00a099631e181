package quality

// Summary aggregates a batch of Reports by status count and average score
// (§4.8's "Summary aggregates counts by status and average score").
type Summary struct {
	Total         int            `json:"total"`
	StatusCounts  map[Verdict]int `json:"status_counts"`
	AverageScore  float64        `json:"average_score"`
}

func Summarize(reports []Report) Summary {
	s := Summary{StatusCounts: map[Verdict]int{}}
	if len(reports) == 0 {
		return s
	}
	var totalScore float64
	for _, r := range reports {
		s.Total++
		s.StatusCounts[r.OverallStatus]++
		totalScore += r.Score
	}
	s.AverageScore = totalScore / float64(len(reports))
	return s
}
