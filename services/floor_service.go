package services

import (
	"errors"
	"strings"

	"haripg-http-service/config"
	"haripg-http-service/models"

	"gorm.io/gorm"
)

// InterfaceFloorService 定义楼层服务接口
type InterfaceFloorService interface {
	GetAllFloors() ([]models.Floor, error)
	GetFloorByID(id uint) (*models.Floor, error)
	CreateFloor(floor *models.Floor) error
	UpdateFloor(id uint, updates map[string]interface{}) (*models.Floor, error)
	DeleteFloor(id uint) error
	SearchFloors(term string) ([]models.Floor, error)
}

// FloorService 提供楼层相关的服务
type FloorService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFloorService 创建一个新的楼层服务
func NewFloorService(db *gorm.DB, cfg *config.Config) InterfaceFloorService {
	return &FloorService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllFloors 获取所有楼层及其房间和住户
func (s *FloorService) GetAllFloors() ([]models.Floor, error) {
	var floors []models.Floor
	if err := s.DB.
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.id") }).
		Preload("Rooms.Residents", func(db *gorm.DB) *gorm.DB { return db.Order("residents.id") }).
		Order("id").Find(&floors).Error; err != nil {
		return nil, err
	}
	return floors, nil
}

// 2 GetFloorByID 根据ID获取楼层
func (s *FloorService) GetFloorByID(id uint) (*models.Floor, error) {
	var floor models.Floor
	if err := s.DB.
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.id") }).
		Preload("Rooms.Residents", func(db *gorm.DB) *gorm.DB { return db.Order("residents.id") }).
		First(&floor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("楼层不存在")
		}
		return nil, err
	}
	return &floor, nil
}

// 3 CreateFloor 创建新楼层
func (s *FloorService) CreateFloor(floor *models.Floor) error {
	if strings.TrimSpace(floor.FloorNumber) == "" {
		return errors.New("楼层名称不能为空")
	}
	return s.DB.Create(floor).Error
}

// 4 UpdateFloor 更新楼层信息
func (s *FloorService) UpdateFloor(id uint, updates map[string]interface{}) (*models.Floor, error) {
	floor, err := s.GetFloorByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(floor).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的楼层信息
	return s.GetFloorByID(id)
}

// 5 DeleteFloor 删除楼层，同时级联删除其下的所有房间和住户
func (s *FloorService) DeleteFloor(id uint) error {
	floor, err := s.GetFloorByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var roomIDs []uint
		if err := tx.Model(&models.Room{}).Where("floor_id = ?", id).Pluck("id", &roomIDs).Error; err != nil {
			return err
		}
		if len(roomIDs) > 0 {
			if err := tx.Where("room_id IN ?", roomIDs).Delete(&models.Resident{}).Error; err != nil {
				return err
			}
			if err := tx.Where("floor_id = ?", id).Delete(&models.Room{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(floor).Error
	})
}

// 6 SearchFloors 按房间号或住户姓名搜索，返回过滤后的楼层结构
func (s *FloorService) SearchFloors(term string) ([]models.Floor, error) {
	floors, err := s.GetAllFloors()
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return floors, nil
	}

	var filtered []models.Floor
	for _, floor := range floors {
		var rooms []models.Room
		for _, room := range floor.Rooms {
			if strings.Contains(strings.ToLower(room.RoomNumber), term) {
				rooms = append(rooms, room)
				continue
			}
			for _, resident := range room.Residents {
				if strings.Contains(strings.ToLower(resident.Name), term) {
					rooms = append(rooms, room)
					break
				}
			}
		}
		if len(rooms) > 0 || strings.Contains(strings.ToLower(floor.FloorNumber), term) {
			floor.Rooms = rooms
			filtered = append(filtered, floor)
		}
	}
	return filtered, nil
}
