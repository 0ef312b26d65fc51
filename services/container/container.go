package container

import (
	"context"
	"log"
	"sync"
	"time"

	"haripg-http-service/config"
	"haripg-http-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 业务服务
	floorService    services.InterfaceFloorService
	roomService     services.InterfaceRoomService
	residentService services.InterfaceResidentService
	receiptService  services.InterfaceReceiptService
	rentService     services.InterfaceRentService
	settingsService services.InterfaceSettingsService
	backupService   services.InterfaceBackupService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)

	// 初始化业务服务
	c.floorService = services.NewFloorService(c.db, c.config)
	c.roomService = services.NewRoomService(c.db, c.config)
	c.residentService = services.NewResidentService(c.db, c.config)
	c.receiptService = services.NewReceiptService(c.db, c.config)
	c.rentService = services.NewRentService(c.db, c.config)
	c.settingsService = services.NewSettingsService(c.db, c.config)
	c.backupService = services.NewBackupService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "floor":
		return c.floorService
	case "room":
		return c.roomService
	case "resident":
		return c.residentService
	case "receipt":
		return c.receiptService
	case "rent":
		return c.rentService
	case "settings":
		return c.settingsService
	case "backup":
		return c.backupService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}
