package services

import (
	"errors"
	"strings"

	"haripg-http-service/config"
	"haripg-http-service/models"

	"gorm.io/gorm"
)

// InterfaceRoomService 定义房间服务接口
type InterfaceRoomService interface {
	GetRoomsByFloorID(floorID uint) ([]models.Room, error)
	GetRoomByID(id uint) (*models.Room, error)
	CreateRoom(room *models.Room) error
	UpdateRoom(id uint, updates map[string]interface{}) (*models.Room, error)
	DeleteRoom(id uint) error
}

// RoomService 提供房间相关的服务
type RoomService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRoomService 创建一个新的房间服务
func NewRoomService(db *gorm.DB, cfg *config.Config) InterfaceRoomService {
	return &RoomService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetRoomsByFloorID 获取指定楼层下的房间列表
func (s *RoomService) GetRoomsByFloorID(floorID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Where("floor_id = ?", floorID).
		Preload("Residents", func(db *gorm.DB) *gorm.DB { return db.Order("residents.id") }).
		Order("id").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// 2 GetRoomByID 根据ID获取房间
func (s *RoomService) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Floor").
		Preload("Residents", func(db *gorm.DB) *gorm.DB { return db.Order("residents.id") }).
		First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("房间不存在")
		}
		return nil, err
	}
	return &room, nil
}

// 3 CreateRoom 创建新房间
func (s *RoomService) CreateRoom(room *models.Room) error {
	if strings.TrimSpace(room.RoomNumber) == "" {
		return errors.New("房间号不能为空")
	}

	// 验证楼层是否存在
	var floor models.Floor
	if err := s.DB.First(&floor, room.FloorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("楼层不存在")
		}
		return err
	}

	return s.DB.Create(room).Error
}

// 4 UpdateRoom 更新房间信息
func (s *RoomService) UpdateRoom(id uint, updates map[string]interface{}) (*models.Room, error) {
	room, err := s.GetRoomByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新所属楼层，需要验证楼层是否存在
	if floorID, ok := updates["floor_id"].(uint); ok && floorID != room.FloorID {
		var floor models.Floor
		if err := s.DB.First(&floor, floorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("楼层不存在")
			}
			return nil, err
		}
	}

	if err := s.DB.Model(room).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的房间信息
	return s.GetRoomByID(id)
}

// 5 DeleteRoom 删除房间，同时级联删除房间内的所有住户
func (s *RoomService) DeleteRoom(id uint) error {
	room, err := s.GetRoomByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Resident{}).Error; err != nil {
			return err
		}
		return tx.Delete(room).Error
	})
}
