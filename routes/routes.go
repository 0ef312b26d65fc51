package routes

import (
	"haripg-http-service/config"
	"haripg-http-service/controllers"
	_ "haripg-http-service/docs"
	"haripg-http-service/middleware"
	"haripg-http-service/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由，登录接口单独限流
	api.POST("/auth/login", middleware.RateLimiter(), controllers.HandleJWTFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// 楼层路由
	auth.Group("/floors").GET("", controllers.HandleFloorFunc(container, "getFloors"))
	auth.Group("/floors").GET("/search", controllers.HandleFloorFunc(container, "searchFloors"))
	auth.Group("/floors").GET("/:id", controllers.HandleFloorFunc(container, "getFloor"))
	auth.Group("/floors").POST("", controllers.HandleFloorFunc(container, "createFloor"))
	auth.Group("/floors").PUT("/:id", controllers.HandleFloorFunc(container, "updateFloor"))
	auth.Group("/floors").DELETE("/:id", controllers.HandleFloorFunc(container, "deleteFloor"))
	// 楼层与房间关联
	auth.Group("/floors").GET("/:id/rooms", controllers.HandleRoomFunc(container, "getRoomsByFloor"))

	// 房间路由
	auth.Group("/rooms").GET("/:id", controllers.HandleRoomFunc(container, "getRoom"))
	auth.Group("/rooms").POST("", controllers.HandleRoomFunc(container, "createRoom"))
	auth.Group("/rooms").PUT("/:id", controllers.HandleRoomFunc(container, "updateRoom"))
	auth.Group("/rooms").DELETE("/:id", controllers.HandleRoomFunc(container, "deleteRoom"))

	// 住户路由
	auth.Group("/residents").GET("", controllers.HandleResidentFunc(container, "getResidents"))
	auth.Group("/residents").GET("/:id", controllers.HandleResidentFunc(container, "getResident"))
	auth.Group("/residents").GET("/:id/receipts", controllers.HandleResidentFunc(container, "getResidentReceipts"))
	auth.Group("/residents").POST("", controllers.HandleResidentFunc(container, "createResident"))
	auth.Group("/residents").PUT("/:id", controllers.HandleResidentFunc(container, "updateResident"))
	auth.Group("/residents").DELETE("/:id", controllers.HandleResidentFunc(container, "deleteResident"))

	// 收据路由
	auth.Group("/receipts").GET("", controllers.HandleReceiptFunc(container, "getReceipts"))
	auth.Group("/receipts").GET("/:id", controllers.HandleReceiptFunc(container, "getReceipt"))
	auth.Group("/receipts").POST("", controllers.HandleReceiptFunc(container, "createReceipt"))
	auth.Group("/receipts").PUT("/:id", controllers.HandleReceiptFunc(container, "updateReceipt"))
	auth.Group("/receipts").DELETE("/:id", controllers.HandleReceiptFunc(container, "deleteReceipt"))

	// 租金对账路由
	auth.Group("/rent").GET("/dues", controllers.HandleRentFunc(container, "getDueList"))
	auth.Group("/rent").GET("/stats", controllers.HandleRentFunc(container, "getRentStats"))
	auth.Group("/rent").POST("/dismiss", controllers.HandleRentFunc(container, "dismissAlert"))
	auth.Group("/rent").POST("/residents/:id/mark-paid", controllers.HandleRentFunc(container, "markPaid"))
	auth.Group("/rent").GET("/dues/:id/reminder", controllers.HandleRentFunc(container, "getReminder"))

	// 全局配置路由
	auth.Group("/settings").GET("", controllers.HandleSettingsFunc(container, "getSettings"))
	auth.Group("/settings").PUT("", controllers.HandleSettingsFunc(container, "updateSettings"))

	// 数据备份路由
	auth.Group("/backup").GET("/export", controllers.HandleBackupFunc(container, "exportSnapshot"))
	auth.Group("/backup").POST("/import", controllers.HandleBackupFunc(container, "importSnapshot"))
	auth.Group("/backup").POST("/cloud/upload", controllers.HandleBackupFunc(container, "cloudUpload"))
	auth.Group("/backup").POST("/cloud/download", controllers.HandleBackupFunc(container, "cloudDownload"))
}
