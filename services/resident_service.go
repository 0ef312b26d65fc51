package services

import (
	"errors"
	"strings"

	"haripg-http-service/config"
	"haripg-http-service/models"

	"gorm.io/gorm"
)

// InterfaceResidentService defines the resident service interface
type InterfaceResidentService interface {
	GetAllResidents(page int, pageSize int) ([]models.Resident, int64, error)
	GetResidentsByRoomID(roomID uint) ([]models.Resident, error)
	GetResidentByID(id uint) (*models.Resident, error)
	CreateResident(resident *models.Resident) error
	UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error)
	DeleteResident(id uint) error
}

// ResidentService 提供住户相关的服务
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewResidentService 创建一个新的住户服务
func NewResidentService(db *gorm.DB, cfg *config.Config) InterfaceResidentService {
	return &ResidentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllResidents 获取所有住户
func (s *ResidentService) GetAllResidents(page int, pageSize int) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64
	if err := s.DB.Model(&models.Resident{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Preload("Room").Offset((page - 1) * pageSize).Limit(pageSize).Find(&residents).Error; err != nil {
		return nil, 0, err
	}
	return residents, total, nil
}

// 2 GetResidentsByRoomID 获取指定房间内的住户列表
func (s *ResidentService) GetResidentsByRoomID(roomID uint) ([]models.Resident, error) {
	var residents []models.Resident
	if err := s.DB.Where("room_id = ?", roomID).Order("id").Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// 3 GetResidentByID 根据ID获取住户
func (s *ResidentService) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.Preload("Room").First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("住户不存在")
		}
		return nil, err
	}
	return &resident, nil
}

// 4 CreateResident 创建新住户
func (s *ResidentService) CreateResident(resident *models.Resident) error {
	if strings.TrimSpace(resident.Name) == "" {
		return errors.New("住户姓名不能为空")
	}

	// 验证房间是否存在
	var room models.Room
	if err := s.DB.First(&room, resident.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("房间不存在")
		}
		return err
	}

	return s.DB.Create(resident).Error
}

// 5 UpdateResident 更新住户信息
func (s *ResidentService) UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error) {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新所在房间，需要验证房间是否存在
	if roomID, ok := updates["room_id"].(uint); ok && roomID != resident.RoomID {
		var room models.Room
		if err := s.DB.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("房间不存在")
			}
			return nil, err
		}
	}

	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的住户信息
	return s.GetResidentByID(id)
}

// 6 DeleteResident 删除住户
func (s *ResidentService) DeleteResident(id uint) error {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 清理该住户的提醒确认记录
		if err := tx.Where("resident_id = ?", id).Delete(&models.RentAlertDismissal{}).Error; err != nil {
			return err
		}
		return tx.Delete(resident).Error
	})
}
