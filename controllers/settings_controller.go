package controllers

import (
	"net/http"

	"haripg-http-service/services"
	"haripg-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceSettingsController 定义全局配置控制器接口
type InterfaceSettingsController interface {
	GetSettings()
	UpdateSettings()
}

// SettingsController 处理全局配置相关的请求
type SettingsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSettingsController 创建一个新的全局配置控制器
func NewSettingsController(ctx *gin.Context, container *container.ServiceContainer) *SettingsController {
	return &SettingsController{
		Ctx:       ctx,
		Container: container,
	}
}

// SettingsRequest 表示更新全局配置的请求
type SettingsRequest struct {
	PGName      *string `json:"pg_name" example:"Hari PG"`
	PGSubtitle  *string `json:"pg_subtitle" example:"Luxury Accommodation"`
	ManagerName *string `json:"manager_name" example:"Hari Kumar"`
	Address     *string `json:"address" example:"29, PR Layout, Marathahalli, Bengaluru"`
	Phone       *string `json:"phone" example:"+91 9010646051"`
	MapURI      *string `json:"map_uri" example:"https://maps.app.goo.gl/..."`
}

// HandleSettingsFunc 返回一个处理全局配置请求的Gin处理函数
func HandleSettingsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSettingsController(ctx, container)

		switch method {
		case "getSettings":
			controller.GetSettings()
		case "updateSettings":
			controller.UpdateSettings()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetSettings 获取全局配置
// @Summary      获取全局配置
// @Description  获取公寓名称、地址、签名人等全局配置
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /settings [get]
func (c *SettingsController) GetSettings() {
	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)
	settings, err := settingsService.GetSettings()
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取配置失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    settings,
	})
}

// UpdateSettings 更新全局配置
// @Summary      更新全局配置
// @Description  更新公寓名称、地址、签名人等全局配置，只更新请求中携带的字段
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request body SettingsRequest true "配置信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /settings [put]
func (c *SettingsController) UpdateSettings() {
	var req SettingsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.PGName != nil {
		updates["pg_name"] = *req.PGName
	}
	if req.PGSubtitle != nil {
		updates["pg_subtitle"] = *req.PGSubtitle
	}
	if req.ManagerName != nil {
		updates["manager_name"] = *req.ManagerName
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.MapURI != nil {
		updates["map_uri"] = *req.MapURI
	}

	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)
	settings, err := settingsService.UpdateSettings(updates)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "更新配置失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    settings,
	})
}
