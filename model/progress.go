package model

// Progress is a point-in-time snapshot of a playback session, safe to read
// from any goroutine. Served as-is by the control server.
type Progress struct {
	SessionID     string  `json:"session_id"`
	Paused        bool    `json:"paused"`
	ElapsedMicros uint64  `json:"elapsed_micros"`
	CurrentTick   uint64  `json:"current_tick"`
	FinalTick     uint64  `json:"final_tick"`
	Speed         float64 `json:"speed"`
}
