package controllers

import (
	"net/http"

	"haripg-http-service/services"
	"haripg-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceRentController 定义租金对账控制器接口
type InterfaceRentController interface {
	GetDueList()
	GetRentStats()
	DismissAlert()
	MarkPaid()
	GetReminder()
}

// RentController 处理租金对账相关的请求
type RentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRentController 创建一个新的租金对账控制器
func NewRentController(ctx *gin.Context, container *container.ServiceContainer) *RentController {
	return &RentController{
		Ctx:       ctx,
		Container: container,
	}
}

// DismissAlertRequest 表示确认欠租提醒的请求
type DismissAlertRequest struct {
	ResidentID uint   `json:"resident_id" binding:"required" example:"1"`
	DueDate    string `json:"due_date" binding:"required" example:"2024-02-10"`
}

// DueListResponse 欠租列表响应数据，也是Redis缓存的载荷
type DueListResponse struct {
	Dues  []services.DueEntry `json:"dues"`
	Stats *services.RentStats `json:"stats"`
}

// HandleRentFunc 返回一个处理租金对账请求的Gin处理函数
func HandleRentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRentController(ctx, container)

		switch method {
		case "getDueList":
			controller.GetDueList()
		case "getRentStats":
			controller.GetRentStats()
		case "dismissAlert":
			controller.DismissAlert()
		case "markPaid":
			controller.MarkPaid()
		case "getReminder":
			controller.GetReminder()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetDueList 获取欠租列表
// @Summary      获取欠租列表
// @Description  重新扫描全部住户的缴费情况，返回按应缴日期排序的欠租列表和统计数据。
// @Description  已被确认（相同应缴日期）的提醒不会出现在列表中。
// @Tags         Rent
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rent/dues [get]
func (c *RentController) GetDueList() {
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)

	// 先查缓存，未命中或Redis不可用时直接重新扫描
	var cached DueListResponse
	if err := redisService.GetCachedDueList(&cached); err == nil && cached.Stats != nil {
		c.Ctx.JSON(http.StatusOK, gin.H{
			"code":    0,
			"message": "成功",
			"data":    cached,
		})
		return
	}

	rentService := c.Container.GetService("rent").(services.InterfaceRentService)
	dues, stats, err := rentService.GetDueList()
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "计算欠租列表失败",
			"data":    nil,
		})
		return
	}

	payload := DueListResponse{Dues: dues, Stats: stats}
	_ = redisService.CacheDueList(payload)

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    payload,
	})
}

// GetRentStats 获取缴费统计
// @Summary      获取缴费统计
// @Description  返回总住户数、已缴/欠租人数和百分比
// @Tags         Rent
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rent/stats [get]
func (c *RentController) GetRentStats() {
	rentService := c.Container.GetService("rent").(services.InterfaceRentService)
	stats, err := rentService.GetRentStats()
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "计算缴费统计失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    stats,
	})
}

// DismissAlert 确认一条欠租提醒
// @Summary      确认欠租提醒
// @Description  按住户ID和应缴日期确认提醒。确认只对该应缴日期生效，
// @Description  住户缴费或进入新的欠租周期后提醒会重新出现。
// @Tags         Rent
// @Accept       json
// @Produce      json
// @Param        request body DismissAlertRequest true "住户ID和应缴日期"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rent/dismiss [post]
func (c *RentController) DismissAlert() {
	var req DismissAlertRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	rentService := c.Container.GetService("rent").(services.InterfaceRentService)
	if err := rentService.DismissAlert(req.ResidentID, req.DueDate); err != nil {
		switch err.Error() {
		case "住户不存在":
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
		case "无效的应缴日期":
			c.Ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			c.Ctx.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "确认提醒失败",
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
		"data":    nil,
	})
}

// MarkPaid 标记住户为已缴
// @Summary      标记已缴
// @Description  按住户配置的租金生成一张今天日期的收据，欠租提醒随之消失
// @Tags         Rent
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{} "成功响应，包含生成的收据"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rent/residents/{id}/mark-paid [post]
func (c *RentController) MarkPaid() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	rentService := c.Container.GetService("rent").(services.InterfaceRentService)
	receipt, err := rentService.MarkPaid(idUint)
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
			"message": "标记已缴失败",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功",
		"data":    receipt,
	})
}

// GetReminder 获取催缴信息
// @Summary      获取催缴信息
// @Description  为欠租住户生成催缴文案及tel:和WhatsApp链接，实际呼叫由前端发起
// @Tags         Rent
// @Accept       json
// @Produce      json
// @Param        id path int true "住户ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /rent/dues/{id}/reminder [get]
func (c *RentController) GetReminder() {
	idUint, ok := parseUintParam(c.Ctx, "id", "住户ID")
	if !ok {
		return
	}

	rentService := c.Container.GetService("rent").(services.InterfaceRentService)
	reminder, err := rentService.GetReminder(idUint)
	if err != nil {
		if err.Error() == "该住户当前没有欠租提醒" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "生成催缴信息失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    reminder,
	})
}
