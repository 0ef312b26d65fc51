package models

// Floor 表示楼层信息
type Floor struct {
	BaseModel
	FloorNumber string `gorm:"type:varchar(50);not null" json:"floor_number"` // 楼层名称，如"Ground Floor"

	// 关联关系
	Rooms []Room `gorm:"foreignKey:FloorID" json:"rooms,omitempty"` // 楼层下的房间（一对多）
}
