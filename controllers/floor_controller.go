package controllers

import (
	"net/http"
	"strconv"

	"haripg-http-service/models"
	"haripg-http-service/services"
	"haripg-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceFloorController 定义楼层控制器接口
type InterfaceFloorController interface {
	GetFloors()
	GetFloor()
	CreateFloor()
	UpdateFloor()
	DeleteFloor()
	SearchFloors()
}

// FloorController 处理楼层相关的请求
type FloorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFloorController 创建一个新的楼层控制器
func NewFloorController(ctx *gin.Context, container *container.ServiceContainer) *FloorController {
	return &FloorController{
		Ctx:       ctx,
		Container: container,
	}
}

// FloorRequest 表示楼层请求
type FloorRequest struct {
	FloorNumber string `json:"floor_number" binding:"required" example:"Ground Floor"`
}

// HandleFloorFunc 返回一个处理楼层请求的Gin处理函数
func HandleFloorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFloorController(ctx, container)

		switch method {
		case "getFloors":
			controller.GetFloors()
		case "getFloor":
			controller.GetFloor()
		case "createFloor":
			controller.CreateFloor()
		case "updateFloor":
			controller.UpdateFloor()
		case "deleteFloor":
			controller.DeleteFloor()
		case "searchFloors":
			controller.SearchFloors()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetFloors 获取所有楼层
// @Summary      获取楼层列表
// @Description  获取全部楼层及其嵌套的房间和住户
// @Tags         Floor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /floors [get]
func (c *FloorController) GetFloors() {
	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	floors, err := floorService.GetAllFloors()
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取楼层列表失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    floors,
	})
}

// GetFloor 获取单个楼层
// @Summary      获取楼层详情
// @Description  根据ID获取特定楼层及其房间和住户
// @Tags         Floor
// @Accept       json
// @Produce      json
// @Param        id path int true "楼层ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /floors/{id} [get]
func (c *FloorController) GetFloor() {
	idUint, ok := c.parseIDParam()
	if !ok {
		return
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	floor, err := floorService.GetFloorByID(idUint)
	if err != nil {
		if err.Error() == "楼层不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取楼层信息失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    floor,
	})
}

// CreateFloor 创建新楼层
// @Summary      创建楼层
// @Description  创建新的楼层
// @Tags         Floor
// @Accept       json
// @Produce      json
// @Param        request body FloorRequest true "楼层信息"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /floors [post]
func (c *FloorController) CreateFloor() {
	var req FloorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	floor := models.Floor{
		FloorNumber: req.FloorNumber,
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	if err := floorService.CreateFloor(&floor); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
			"data":    nil,
		})
		return
	}

	// 楼层数量计入统计，清除缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功",
		"data":    floor,
	})
}

// UpdateFloor 更新楼层信息
// @Summary      更新楼层
// @Description  根据ID更新楼层信息
// @Tags         Floor
// @Accept       json
// @Produce      json
// @Param        id path int true "楼层ID"
// @Param        request body FloorRequest true "楼层信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /floors/{id} [put]
func (c *FloorController) UpdateFloor() {
	idUint, ok := c.parseIDParam()
	if !ok {
		return
	}

	var req FloorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	updates := map[string]interface{}{
		"floor_number": req.FloorNumber,
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	floor, err := floorService.UpdateFloor(idUint, updates)
	if err != nil {
		if err.Error() == "楼层不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "更新楼层失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    floor,
	})
}

// DeleteFloor 删除楼层
// @Summary      删除楼层
// @Description  删除楼层及其下所有房间和住户
// @Tags         Floor
// @Accept       json
// @Produce      json
// @Param        id path int true "楼层ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /floors/{id} [delete]
func (c *FloorController) DeleteFloor() {
	idUint, ok := c.parseIDParam()
	if !ok {
		return
	}

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	if err := floorService.DeleteFloor(idUint); err != nil {
		if err.Error() == "楼层不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "删除楼层失败",
			"data":    nil,
		})
		return
	}

	// 删除楼层会连带删除房间和住户，清除缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}

// SearchFloors 搜索楼层
// @Summary      搜索房间和住户
// @Description  按房间号或住户姓名搜索，返回过滤后的楼层结构
// @Tags         Floor
// @Accept       json
// @Produce      json
// @Param        q query string false "搜索关键字"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /floors/search [get]
func (c *FloorController) SearchFloors() {
	term := c.Ctx.Query("q")

	floorService := c.Container.GetService("floor").(services.InterfaceFloorService)
	floors, err := floorService.SearchFloors(term)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "搜索失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    floors,
	})
}

// parseIDParam 解析路径中的楼层ID参数
func (c *FloorController) parseIDParam() (uint, bool) {
	id := c.Ctx.Param("id")
	if id == "" {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "楼层ID不能为空",
			"data":    nil,
		})
		return 0, false
	}

	idUint, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的楼层ID",
			"data":    nil,
		})
		return 0, false
	}
	return uint(idUint), true
}
