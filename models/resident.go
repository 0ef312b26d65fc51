package models

import (
	"github.com/shopspring/decimal"
)

// Resident 表示入住的住户
type Resident struct {
	BaseModel
	Name        string          `gorm:"type:varchar(50);not null" json:"name"`
	Mobile      string          `gorm:"type:varchar(20)" json:"mobile"`
	RentAmount  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"rent_amount"` // 每月租金
	JoiningDate string          `gorm:"type:varchar(10)" json:"joining_date,omitempty"`  // 入住日期，ISO格式"2006-01-02"，可为空
	RoomID      uint            `json:"room_id"`                                         // 关联的房间ID

	// 关联关系
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"` // 所属房间（多对一）
}
