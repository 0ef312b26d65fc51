package controllers

import (
	"net/http"

	"haripg-http-service/models"
	"haripg-http-service/services"
	"haripg-http-service/services/container"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse 表示登录响应
type LoginResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"Login successful"`
	Data    interface{} `json:"data"`
}

// LoginData 表示登录成功后返回的数据
type LoginData struct {
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	UserID   uint   `json:"user_id" example:"1"`
	Role     string `json:"role" example:"admin"`
	Username string `json:"username" example:"admin"`
}

// HandleJWTFunc 返回一个处理JWT认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// Login 处理管理员登录
// @Summary      管理员登录
// @Description  验证管理员账号密码并返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录请求参数"
// @Success      200  {object}  LoginResponse{data=LoginData}  "成功响应，包含令牌"
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Failure      401  {object}  ErrorResponse  "用户名或密码错误"
// @Failure      500  {object}  ErrorResponse  "服务器错误"
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	// 获取数据库连接和JWT服务
	db := c.Container.GetDB()
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)

	// 查找管理员用户
	var admin models.Admin
	if err := db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		c.Ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "用户名或密码错误",
			"data":    nil,
		})
		return
	}

	// 比较密码
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		c.Ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "用户名或密码错误",
			"data":    nil,
		})
		return
	}

	// 生成管理员令牌
	token, err := jwtService.GenerateToken(admin.ID, "admin")
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "生成令牌失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": LoginData{
			Token:    token,
			UserID:   admin.ID,
			Role:     "admin",
			Username: admin.Username,
		},
	})
}
