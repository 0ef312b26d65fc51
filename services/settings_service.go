package services

import (
	"errors"

	"haripg-http-service/config"
	"haripg-http-service/models"

	"gorm.io/gorm"
)

// InterfaceSettingsService 定义全局配置服务接口
type InterfaceSettingsService interface {
	GetSettings() (*models.AppSettings, error)
	UpdateSettings(updates map[string]interface{}) (*models.AppSettings, error)
	EnsureSettingsExist() error
}

// SettingsService 提供公寓全局配置相关的服务
type SettingsService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewSettingsService 创建一个新的全局配置服务
func NewSettingsService(db *gorm.DB, cfg *config.Config) InterfaceSettingsService {
	return &SettingsService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetSettings 获取全局配置，整张表只有一条记录
func (s *SettingsService) GetSettings() (*models.AppSettings, error) {
	var settings models.AppSettings
	if err := s.DB.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.EnsureSettingsExist(); err != nil {
				return nil, err
			}
			if err := s.DB.First(&settings).Error; err != nil {
				return nil, err
			}
			return &settings, nil
		}
		return nil, err
	}
	return &settings, nil
}

// 2 UpdateSettings 更新全局配置
func (s *SettingsService) UpdateSettings(updates map[string]interface{}) (*models.AppSettings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(settings).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetSettings()
}

// 3 EnsureSettingsExist 确保配置记录存在，不存在时写入默认值
func (s *SettingsService) EnsureSettingsExist() error {
	var count int64
	if err := s.DB.Model(&models.AppSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := &models.AppSettings{
		PGName:      "Hari PG",
		PGSubtitle:  "Luxury Accommodation",
		ManagerName: "Hari Kumar",
		Address:     "29, PR Layout, Marathahalli, Bengaluru",
		Phone:       "+91 9010646051",
	}
	return s.DB.Create(defaults).Error
}
