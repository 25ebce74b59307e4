package models

import "time"

// SyncRun is one recorded synchronization attempt, successful or not.
type SyncRun struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Mode    string `gorm:"column:mode;size:16" json:"mode"`
	Success bool   `gorm:"column:success" json:"success"`
	// Message is "ok" for successful runs and the failure reason otherwise.
	Message string `gorm:"column:message;size:1024" json:"message"`

	Added            int `gorm:"column:added" json:"added"`
	Updated          int `gorm:"column:updated" json:"updated"`
	Removed          int `gorm:"column:removed" json:"removed"`
	TotalFeedRecords int `gorm:"column:total_feed_records" json:"total_feed_records"`
	// Total is the catalog size after the run; zero for failed runs.
	Total int `gorm:"column:total" json:"total"`

	DurationMs int64     `gorm:"column:duration_ms" json:"duration_ms"`
	RanAt      time.Time `gorm:"column:ran_at;index" json:"ran_at"`
}

// TableName overrides the table name.
func (SyncRun) TableName() string {
	return "sync_runs"
}
