package breaks

// StartBreakDTO carries the break type being started.
type StartBreakDTO struct {
	BreakType string `json:"break_type"`
}

// EndBreakDTO identifies the break being ended. The caller must own it.
type EndBreakDTO struct {
	BreakID string `json:"break_id"`
}

// OverviewResponse is the GET /breaks payload: today's breaks newest
// first, the active one if any, and aggregates over completed breaks.
type OverviewResponse struct {
	TodayBreaks       []*Break `json:"todayBreaks"`
	ActiveBreak       *Break   `json:"activeBreak"`
	CompletedCount    int      `json:"completedCount"`
	TotalBreakSeconds int64    `json:"totalBreakSeconds"`
}
