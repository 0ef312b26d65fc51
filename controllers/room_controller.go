package controllers

import (
	"net/http"
	"strconv"

	"haripg-http-service/models"
	"haripg-http-service/services"
	"haripg-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceRoomController 定义房间控制器接口
type InterfaceRoomController interface {
	GetRoomsByFloor()
	GetRoom()
	CreateRoom()
	UpdateRoom()
	DeleteRoom()
}

// RoomController 处理房间相关的请求
type RoomController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRoomController 创建一个新的房间控制器
func NewRoomController(ctx *gin.Context, container *container.ServiceContainer) *RoomController {
	return &RoomController{
		Ctx:       ctx,
		Container: container,
	}
}

// RoomRequest 表示房间请求
type RoomRequest struct {
	RoomNumber string `json:"room_number" binding:"required" example:"101"`
	FloorID    uint   `json:"floor_id" binding:"required" example:"1"`
}

// UpdateRoomRequest 表示更新房间请求
type UpdateRoomRequest struct {
	RoomNumber string `json:"room_number" example:"102"`
	FloorID    uint   `json:"floor_id" example:"1"`
}

// HandleRoomFunc 返回一个处理房间请求的Gin处理函数
func HandleRoomFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRoomController(ctx, container)

		switch method {
		case "getRoomsByFloor":
			controller.GetRoomsByFloor()
		case "getRoom":
			controller.GetRoom()
		case "createRoom":
			controller.CreateRoom()
		case "updateRoom":
			controller.UpdateRoom()
		case "deleteRoom":
			controller.DeleteRoom()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetRoomsByFloor 获取指定楼层下的房间
// @Summary      获取楼层的房间列表
// @Description  获取指定楼层下的全部房间及住户
// @Tags         Room
// @Accept       json
// @Produce      json
// @Param        id path int true "楼层ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /floors/{id}/rooms [get]
func (c *RoomController) GetRoomsByFloor() {
	idUint, ok := parseUintParam(c.Ctx, "id", "楼层ID")
	if !ok {
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	rooms, err := roomService.GetRoomsByFloorID(idUint)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取房间列表失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    rooms,
	})
}

// GetRoom 获取单个房间
// @Summary      获取房间详情
// @Description  根据ID获取特定房间及其住户
// @Tags         Room
// @Accept       json
// @Produce      json
// @Param        id path int true "房间ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms/{id} [get]
func (c *RoomController) GetRoom() {
	idUint, ok := parseUintParam(c.Ctx, "id", "房间ID")
	if !ok {
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	room, err := roomService.GetRoomByID(idUint)
	if err != nil {
		if err.Error() == "房间不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取房间信息失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    room,
	})
}

// CreateRoom 创建新房间
// @Summary      创建房间
// @Description  在指定楼层下创建新房间
// @Tags         Room
// @Accept       json
// @Produce      json
// @Param        request body RoomRequest true "房间信息 - 房间号和楼层ID为必填"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "请求错误，楼层不存在"
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms [post]
func (c *RoomController) CreateRoom() {
	var req RoomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	room := models.Room{
		RoomNumber: req.RoomNumber,
		FloorID:    req.FloorID,
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	if err := roomService.CreateRoom(&room); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
			"data":    nil,
		})
		return
	}

	// 房间数量计入统计，清除缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功",
		"data":    room,
	})
}

// UpdateRoom 更新房间信息
// @Summary      更新房间
// @Description  根据ID更新房间信息
// @Tags         Room
// @Accept       json
// @Produce      json
// @Param        id path int true "房间ID"
// @Param        request body UpdateRoomRequest true "房间信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms/{id} [put]
func (c *RoomController) UpdateRoom() {
	idUint, ok := parseUintParam(c.Ctx, "id", "房间ID")
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.RoomNumber != "" {
		updates["room_number"] = req.RoomNumber
	}
	if req.FloorID != 0 {
		updates["floor_id"] = req.FloorID
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	room, err := roomService.UpdateRoom(idUint, updates)
	if err != nil {
		switch err.Error() {
		case "房间不存在":
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
		case "楼层不存在":
			c.Ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			c.Ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "更新房间失败",
				"data":    nil,
			})
		}
		return
	}

	// 房间号会出现在欠租列表中，清除缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    room,
	})
}

// DeleteRoom 删除房间
// @Summary      删除房间
// @Description  删除房间及其内的所有住户
// @Tags         Room
// @Accept       json
// @Produce      json
// @Param        id path int true "房间ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rooms/{id} [delete]
func (c *RoomController) DeleteRoom() {
	idUint, ok := parseUintParam(c.Ctx, "id", "房间ID")
	if !ok {
		return
	}

	roomService := c.Container.GetService("room").(services.InterfaceRoomService)
	if err := roomService.DeleteRoom(idUint); err != nil {
		if err.Error() == "房间不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "删除房间失败",
			"data":    nil,
		})
		return
	}

	// 删除房间会连带删除住户，清除缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}

// parseUintParam 解析路径中的无符号整型参数
func parseUintParam(ctx *gin.Context, name, label string) (uint, bool) {
	raw := ctx.Param(name)
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": label + "不能为空",
			"data":    nil,
		})
		return 0, false
	}

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的" + label,
			"data":    nil,
		})
		return 0, false
	}
	return uint(value), true
}
