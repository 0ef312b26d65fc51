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

// InterfaceReceiptController 定义收据控制器接口
type InterfaceReceiptController interface {
	GetReceipts()
	GetReceipt()
	CreateReceipt()
	UpdateReceipt()
	DeleteReceipt()
}

// ReceiptController 处理收据相关的请求
type ReceiptController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReceiptController 创建一个新的收据控制器
func NewReceiptController(ctx *gin.Context, container *container.ServiceContainer) *ReceiptController {
	return &ReceiptController{
		Ctx:       ctx,
		Container: container,
	}
}

// ReceiptRequest 表示收据请求
type ReceiptRequest struct {
	ResidentName  string          `json:"resident_name" binding:"required" example:"Alice Kumar"`
	RoomNumber    string          `json:"room_number" example:"101"`
	MobileNumber  string          `json:"mobile_number" example:"9876543210"`
	Amount        decimal.Decimal `json:"amount" example:"8500"`
	Date          string          `json:"date" binding:"required" example:"2024-01-10"`
	PaymentMethod string          `json:"payment_method" example:"UPI"`
	Notes         string          `json:"notes" example:"January rent"`
}

// UpdateReceiptRequest 表示更新收据请求
type UpdateReceiptRequest struct {
	ResidentName  string           `json:"resident_name" example:"Alice Kumar"`
	RoomNumber    string           `json:"room_number" example:"101"`
	MobileNumber  string           `json:"mobile_number" example:"9876543210"`
	Amount        *decimal.Decimal `json:"amount" example:"8500"`
	Date          string           `json:"date" example:"2024-01-10"`
	PaymentMethod string           `json:"payment_method" example:"Cash"`
	Notes         *string          `json:"notes" example:"January rent"`
}

// HandleReceiptFunc 返回一个处理收据请求的Gin处理函数
func HandleReceiptFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReceiptController(ctx, container)

		switch method {
		case "getReceipts":
			controller.GetReceipts()
		case "getReceipt":
			controller.GetReceipt()
		case "createReceipt":
			controller.CreateReceipt()
		case "updateReceipt":
			controller.UpdateReceipt()
		case "deleteReceipt":
			controller.DeleteReceipt()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// GetReceipts 获取收据列表
// @Summary      获取收据列表
// @Description  获取收据列表，支持分页和按住户姓名或房间号搜索，并返回过滤结果的总金额
// @Tags         Receipt
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为20"
// @Param        search query string false "搜索关键字"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /receipts [get]
func (c *ReceiptController) GetReceipts() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Ctx.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	search := c.Ctx.Query("search")

	receiptService := c.Container.GetService("receipt").(services.InterfaceReceiptService)
	receipts, total, totalAmount, err := receiptService.GetAllReceipts(page, pageSize, search)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取收据列表失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"total":        total,
			"page":         page,
			"page_size":    pageSize,
			"total_pages":  (total + int64(pageSize) - 1) / int64(pageSize),
			"total_amount": totalAmount,
			"data":         receipts,
		},
	})
}

// GetReceipt 获取单个收据
// @Summary      获取收据详情
// @Description  根据ID获取特定收据的详细信息
// @Tags         Receipt
// @Accept       json
// @Produce      json
// @Param        id path int true "收据ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /receipts/{id} [get]
func (c *ReceiptController) GetReceipt() {
	idUint, ok := parseUintParam(c.Ctx, "id", "收据ID")
	if !ok {
		return
	}

	receiptService := c.Container.GetService("receipt").(services.InterfaceReceiptService)
	receipt, err := receiptService.GetReceiptByID(idUint)
	if err != nil {
		if err.Error() == "收据不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取收据信息失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    receipt,
	})
}

// CreateReceipt 创建新收据
// @Summary      创建收据
// @Description  录入一条新的缴费收据。收据通过住户姓名匹配，录入后立即影响欠租计算
// @Tags         Receipt
// @Accept       json
// @Produce      json
// @Param        request body ReceiptRequest true "收据信息 - 住户姓名和日期为必填"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /receipts [post]
func (c *ReceiptController) CreateReceipt() {
	var req ReceiptRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	receipt := models.Receipt{
		ResidentName:  req.ResidentName,
		RoomNumber:    req.RoomNumber,
		MobileNumber:  req.MobileNumber,
		Amount:        req.Amount,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	receiptService := c.Container.GetService("receipt").(services.InterfaceReceiptService)
	if err := receiptService.CreateReceipt(&receipt); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
			"data":    nil,
		})
		return
	}

	// 收据变化会影响欠租扫描结果，清除缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功",
		"data":    receipt,
	})
}

// UpdateReceipt 更新收据信息
// @Summary      更新收据
// @Description  根据ID更新收据。编辑会触发下一次欠租扫描重新计算
// @Tags         Receipt
// @Accept       json
// @Produce      json
// @Param        id path int true "收据ID"
// @Param        request body UpdateReceiptRequest true "收据信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /receipts/{id} [put]
func (c *ReceiptController) UpdateReceipt() {
	idUint, ok := parseUintParam(c.Ctx, "id", "收据ID")
	if !ok {
		return
	}

	var req UpdateReceiptRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.ResidentName != "" {
		updates["resident_name"] = req.ResidentName
	}
	if req.RoomNumber != "" {
		updates["room_number"] = req.RoomNumber
	}
	if req.MobileNumber != "" {
		updates["mobile_number"] = req.MobileNumber
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Date != "" {
		updates["date"] = req.Date
	}
	if req.PaymentMethod != "" {
		updates["payment_method"] = req.PaymentMethod
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	receiptService := c.Container.GetService("receipt").(services.InterfaceReceiptService)
	receipt, err := receiptService.UpdateReceipt(idUint, updates)
	if err != nil {
		if err.Error() == "收据不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "更新收据失败",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    receipt,
	})
}

// DeleteReceipt 删除收据
// @Summary      删除收据
// @Description  永久删除一条收据记录
// @Tags         Receipt
// @Accept       json
// @Produce      json
// @Param        id path int true "收据ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /receipts/{id} [delete]
func (c *ReceiptController) DeleteReceipt() {
	idUint, ok := parseUintParam(c.Ctx, "id", "收据ID")
	if !ok {
		return
	}

	receiptService := c.Container.GetService("receipt").(services.InterfaceReceiptService)
	if err := receiptService.DeleteReceipt(idUint); err != nil {
		if err.Error() == "收据不存在" {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "删除收据失败",
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
