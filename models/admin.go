package models

import (
	"haripg-http-service/utils"

	"gorm.io/gorm"
)

// Admin 表示公寓管理员账户
type Admin struct {
	BaseModel
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Email    string `gorm:"type:varchar(100)" json:"email"`
	Status   string `gorm:"type:varchar(20);default:'active'" json:"status"` // 状态：active, inactive
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行。
// 已经哈希过的密码不再二次哈希
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.Password != "" && !utils.IsHashed(a.Password) {
		hashedPassword, err := utils.HashPassword(a.Password)
		if err != nil {
			return err
		}
		a.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (a *Admin) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if a.Password != "" && !utils.IsHashed(a.Password) {
		hashedPassword, err := utils.HashPassword(a.Password)
		if err != nil {
			return err
		}
		a.Password = hashedPassword
	}
	return nil
}
