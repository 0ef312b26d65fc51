package models

// Room 表示房间信息
type Room struct {
	BaseModel
	RoomNumber string `gorm:"type:varchar(50);not null" json:"room_number"` // 房间号，如"101"
	FloorID    uint   `json:"floor_id"`                                     // 关联的楼层ID

	// 关联关系
	Floor     *Floor     `gorm:"foreignKey:FloorID" json:"floor,omitempty"`    // 所属楼层（多对一）
	Residents []Resident `gorm:"foreignKey:RoomID" json:"residents,omitempty"` // 房间内的住户（一对多）
}
