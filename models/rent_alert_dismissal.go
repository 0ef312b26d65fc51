package models

import "time"

// RentAlertDismissal 记录管理员对某条欠租提醒的确认。
// 每个住户最多保留一条记录，新的确认会覆盖旧的；
// 当投影出的应缴日期变化后，旧记录不再匹配，提醒会重新出现。
type RentAlertDismissal struct {
	ResidentID uint      `gorm:"primaryKey" json:"resident_id"`
	DueDate    string    `gorm:"type:varchar(10);not null" json:"due_date"` // 被确认的应缴日期令牌，ISO格式"2006-01-02"
	UpdatedAt  time.Time `json:"updated_at"`
}
