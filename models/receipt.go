package models

import (
	"github.com/shopspring/decimal"
)

// Receipt 表示一条缴费收据记录。收据与住户之间没有外键关联，
// 对账时通过住户姓名（去空格、转小写后）进行匹配。
type Receipt struct {
	BaseModel
	ResidentName  string          `gorm:"type:varchar(50);not null" json:"resident_name"`
	RoomNumber    string          `gorm:"type:varchar(50)" json:"room_number"`
	MobileNumber  string          `gorm:"type:varchar(20)" json:"mobile_number"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"amount"`
	Date          string          `gorm:"type:varchar(10);not null" json:"date"` // 缴费日期，ISO格式"2006-01-02"
	PaymentMethod string          `gorm:"type:varchar(20);default:'UPI'" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
}
