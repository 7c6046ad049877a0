package attendance

// ClockOutDTO identifies the session being closed. The caller must own it.
type ClockOutDTO struct {
	AttendanceID string `json:"attendance_id"`
}

// OverviewResponse is the GET /attendance payload: today's completed
// sessions, the open one if any, and the summed worked seconds.
type OverviewResponse struct {
	TodayLogs          []*Attendance `json:"todayLogs"`
	ActiveLog          *Attendance   `json:"activeLog"`
	TotalWorkedSeconds int64         `json:"totalWorkedSeconds"`
}
