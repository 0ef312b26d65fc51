package models

// AppSettings 表示公寓的全局配置，整张表只有一条记录
type AppSettings struct {
	BaseModel
	PGName      string `gorm:"type:varchar(100);default:'Hari PG'" json:"pg_name"`
	PGSubtitle  string `gorm:"type:varchar(200)" json:"pg_subtitle"`
	ManagerName string `gorm:"type:varchar(100)" json:"manager_name"` // 收据上的签名人
	Address     string `gorm:"type:varchar(200)" json:"address"`
	Phone       string `gorm:"type:varchar(20)" json:"phone"`
	MapURI      string `gorm:"type:varchar(500)" json:"map_uri,omitempty"`
}
