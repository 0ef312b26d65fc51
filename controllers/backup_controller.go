package controllers

import (
	"net/http"

	"haripg-http-service/services"
	"haripg-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceBackupController 定义备份控制器接口
type InterfaceBackupController interface {
	ExportSnapshot()
	ImportSnapshot()
	CloudUpload()
	CloudDownload()
}

// BackupController 处理数据备份和恢复相关的请求
type BackupController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBackupController 创建一个新的备份控制器
func NewBackupController(ctx *gin.Context, container *container.ServiceContainer) *BackupController {
	return &BackupController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleBackupFunc 返回一个处理备份请求的Gin处理函数
func HandleBackupFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBackupController(ctx, container)

		switch method {
		case "exportSnapshot":
			controller.ExportSnapshot()
		case "importSnapshot":
			controller.ImportSnapshot()
		case "cloudUpload":
			controller.CloudUpload()
		case "cloudDownload":
			controller.CloudDownload()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// ExportSnapshot 导出全量数据
// @Summary      导出数据
// @Description  导出楼层、住户、收据、提醒确认和配置的完整快照
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /backup/export [get]
func (c *BackupController) ExportSnapshot() {
	backupService := c.Container.GetService("backup").(services.InterfaceBackupService)
	snapshot, err := backupService.ExportSnapshot()
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "导出数据失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    snapshot,
	})
}

// ImportSnapshot 导入全量数据
// @Summary      导入数据
// @Description  用上传的快照整体替换当前数据，在单个事务内完成
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Param        request body services.Snapshot true "完整数据快照"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /backup/import [post]
func (c *BackupController) ImportSnapshot() {
	var snapshot services.Snapshot
	if err := c.Ctx.ShouldBindJSON(&snapshot); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的备份文件格式",
			"data":    nil,
		})
		return
	}

	backupService := c.Container.GetService("backup").(services.InterfaceBackupService)
	if err := backupService.ImportSnapshot(&snapshot); err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "导入数据失败",
			"data":    nil,
		})
		return
	}

	// 数据被整体替换，清除欠租缓存
	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}

// CloudUpload 上传备份到云端
// @Summary      云端备份
// @Description  将完整快照上传到配置的JSONBin
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "未配置云备份密钥"
// @Failure      500  {object}  ErrorResponse
// @Router       /backup/cloud/upload [post]
func (c *BackupController) CloudUpload() {
	backupService := c.Container.GetService("backup").(services.InterfaceBackupService)
	if err := backupService.CloudUpload(); err != nil {
		if err.Error() == "未配置云备份密钥" {
			c.Ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "云端备份失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}

// CloudDownload 从云端恢复备份
// @Summary      云端恢复
// @Description  从配置的JSONBin拉取最新快照并整体替换当前数据
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "未配置云备份密钥"
// @Failure      500  {object}  ErrorResponse
// @Router       /backup/cloud/download [post]
func (c *BackupController) CloudDownload() {
	backupService := c.Container.GetService("backup").(services.InterfaceBackupService)
	snapshot, err := backupService.CloudDownload()
	if err != nil {
		if err.Error() == "未配置云备份密钥" {
			c.Ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": err.Error(),
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "云端恢复失败",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(services.InterfaceRedisService)
	_ = redisService.InvalidateDueList()

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"snapshot_id": snapshot.SnapshotID,
			"exported_at": snapshot.ExportedAt,
		},
	})
}
