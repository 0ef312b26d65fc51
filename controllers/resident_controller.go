package controllers

import (
	"net/http"
	"strconv"

	"haripg-http-service/models"
	"haripg-http-service/services"
	"haripg-http-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InterfaceResidentController 定义住户控制器接口
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	GetResidentReceipts()
	CreateResident()
	UpdateResident()
	DeleteResident()
}

// ResidentController 处理住户相关的请求
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController 创建一个新的住户控制器
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ResidentRequest 表示住户请求
type ResidentRequest struct {
	Name        string          `json:"name" binding:"required" example:"Alice Kumar"`
	Mobile      string          `json:"mobile" example:"9876543210"`
	RentAmount  decimal.Decimal `json:"rent_amount" example:"8500"`
	JoiningDate string          `json:"joining_date" example:"2024-01-10"`
	RoomID      uint            `json:"room_id" binding:"required" example:"1"`
}

// UpdateResidentRequest 表示更新住户请求
type UpdateResidentRequest struct {
	Name        string           `json:"name" example:"Alice Kumar"`
	Mobile      string           `json:"mobile" example:"9876543210"`
	RentAmount  *decimal.Decimal `json:"rent_amount" example:"9000"`
	JoiningDate *string          `json:"joining_date" example:"2024-01-10"`
	RoomID      uint             `json:"room_id" example:"2"`
}

// HandleResidentFunc 返回一个处理住户请求的Gin处理函数
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "getResidentReceipts":
			controller.GetResidentReceipts()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "deleteResident":
			controller.DeleteResident()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetResidents 获取所有住户
// @Summary      获取住户列表
// @Description  获取系统中所有住户的列表
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /residents [get]
func (c *ResidentController) GetResidents() {
	// 获取分页参数
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, total, err := residentService.GetAllResidents(page, pageSize)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取住户列表失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
			"data":        residents,
		},
	})
}

// GetResident 获取单个住户
// @Summary      获取住户详情
// @Description  根据ID获取特定住户的详细信息
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /residents/{id} [get]
func (c *ResidentController) GetResident() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(idUint)
	if err != nil {
		if err.Error() == "住户不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取住户信息失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    resident,
	})
}

// GetResidentReceipts 获取住户的缴费历史
// @Summary      获取住户缴费历史
// @Description  按姓名匹配返回该住户的全部收据，按日期降序。
// @Description  同名住户（规范化后）会共享同一份历史，这是已知限制。
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /residents/{id}/receipts [get]
func (c *ResidentController) GetResidentReceipts() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(idUint)
	if err != nil {
		if err.Error() == "住户不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取住户信息失败",
			"data":    nil,
		})
		return
	}

	receiptService := c.Container.GetService("receipt").(services.InterfaceReceiptService)
	receipts, err := receiptService.GetResidentPaymentHistory(resident.Name)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取缴费历史失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"resident": resident,
			"receipts": receipts,
		},
	})
}

// CreateResident 创建新住户
// @Summary      创建住户
// @Description  在指定房间内创建新住户
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        request body ResidentRequest true "住户信息 - 姓名和房间ID为必填"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{} "成功响应，包含创建的住户详情"
// @Failure      400  {object}  ErrorResponse "请求错误，房间不存在"
// @Failure      500  {object}  ErrorResponse "服务器错误"
// @Router       /residents [post]
func (c *ResidentController) CreateResident() {
	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	resident := models.Resident{
		Name:        req.Name,
		Mobile:      req.Mobile,
		RentAmount:  req.RentAmount,
		JoiningDate: req.JoiningDate,
		RoomID:      req.RoomID,
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.CreateResident(&resident); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
			"data":    nil,
		})
		return
	}

	// 住户变化会影响欠租扫描结果，清除缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功",
		"data":    resident,
	})
}

// UpdateResident 更新住户信息
// @Summary      更新住户
// @Description  根据ID更新住户信息。改名后该住户按旧名开出的收据不再匹配
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Param        request body UpdateResidentRequest true "住户信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /residents/{id} [put]
func (c *ResidentController) UpdateResident() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	var req UpdateResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Mobile != "" {
		updates["mobile"] = req.Mobile
	}
	if req.RentAmount != nil {
		updates["rent_amount"] = *req.RentAmount
	}
	if req.JoiningDate != nil {
		updates["joining_date"] = *req.JoiningDate
	}
	if req.RoomID != 0 {
		updates["room_id"] = req.RoomID
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.UpdateResident(idUint, updates)
	if err != nil {
		switch err.Error() {
		case "住户不存在":
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
		case "房间不存在":
			c.Ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			c.Ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "更新住户失败",
				"data":    nil,
			})
		}
		return
	}

	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    resident,
	})
}

// DeleteResident 删除住户
// @Summary      删除住户
// @Description  删除住户及其提醒确认记录，收据保留
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /residents/{id} [delete]
func (c *ResidentController) DeleteResident() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.DeleteResident(idUint); err != nil {
		if err.Error() == "住户不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "删除住户失败",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}
