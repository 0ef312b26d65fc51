package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"haripg-http-service/config"
	"haripg-http-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Snapshot 表示一次完整的数据备份，与前端导出的JSON格式兼容
type Snapshot struct {
	SnapshotID string                      `json:"snapshot_id"`
	ExportedAt time.Time                   `json:"exported_at"`
	Floors     []models.Floor              `json:"floors"`
	Receipts   []models.Receipt            `json:"receipts"`
	Dismissals []models.RentAlertDismissal `json:"dismissals"`
	Settings   *models.AppSettings         `json:"settings,omitempty"`
}

// jsonBinRecord JSONBin读取接口返回的包装结构
type jsonBinRecord struct {
	Record Snapshot `json:"record"`
}

// InterfaceBackupService 定义备份服务接口
type InterfaceBackupService interface {
	ExportSnapshot() (*Snapshot, error)
	ImportSnapshot(snapshot *Snapshot) error
	CloudUpload() error
	CloudDownload() (*Snapshot, error)
}

// BackupService 提供数据备份和恢复相关的服务
type BackupService struct {
	DB     *gorm.DB
	Config *config.Config
	// HTTPClient 允许测试注入，默认使用带超时的http.Client
	HTTPClient *http.Client
}

// NewBackupService 创建一个新的备份服务
func NewBackupService(db *gorm.DB, cfg *config.Config) InterfaceBackupService {
	return &BackupService{
		DB:     db,
		Config: cfg,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// 1 ExportSnapshot 导出全部数据为一个快照
func (s *BackupService) ExportSnapshot() (*Snapshot, error) {
	snapshot := &Snapshot{
		SnapshotID: uuid.NewString(),
		ExportedAt: time.Now(),
	}

	if err := s.DB.
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.id") }).
		Preload("Rooms.Residents", func(db *gorm.DB) *gorm.DB { return db.Order("residents.id") }).
		Order("id").Find(&snapshot.Floors).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Order("id").Find(&snapshot.Receipts).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Find(&snapshot.Dismissals).Error; err != nil {
		return nil, err
	}

	var settings models.AppSettings
	if err := s.DB.First(&settings).Error; err == nil {
		snapshot.Settings = &settings
	}

	return snapshot, nil
}

// 2 ImportSnapshot 用快照整体替换当前数据。
// 在单个事务内先清空再写入，不存在部分写入的中间状态。
func (s *BackupService) ImportSnapshot(snapshot *Snapshot) error {
	if snapshot == nil {
		return errors.New("备份数据为空")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 清空现有数据
		for _, model := range []interface{}{
			&models.Resident{}, &models.Room{}, &models.Floor{},
			&models.Receipt{}, &models.RentAlertDismissal{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}

		// 写入快照，嵌套的房间和住户由GORM级联创建
		if len(snapshot.Floors) > 0 {
			if err := tx.Create(&snapshot.Floors).Error; err != nil {
				return err
			}
		}
		if len(snapshot.Receipts) > 0 {
			if err := tx.Create(&snapshot.Receipts).Error; err != nil {
				return err
			}
		}
		if len(snapshot.Dismissals) > 0 {
			if err := tx.Create(&snapshot.Dismissals).Error; err != nil {
				return err
			}
		}

		// 配置只在快照里带有时覆盖
		if snapshot.Settings != nil {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.AppSettings{}).Error; err != nil {
				return err
			}
			settings := *snapshot.Settings
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// 3 CloudUpload 将快照上传到JSONBin
func (s *BackupService) CloudUpload() error {
	if s.Config.JSONBinID == "" || s.Config.JSONBinSecret == "" {
		return errors.New("未配置云备份密钥")
	}

	snapshot, err := s.ExportSnapshot()
	if err != nil {
		return err
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/b/%s", s.Config.JSONBinAPIURL, s.Config.JSONBinID)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", s.Config.JSONBinSecret)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error uploading backup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cloud backup failed with status code %d", resp.StatusCode)
	}
	return nil
}

// 4 CloudDownload 从JSONBin拉取最新快照并恢复
func (s *BackupService) CloudDownload() (*Snapshot, error) {
	if s.Config.JSONBinID == "" || s.Config.JSONBinSecret == "" {
		return nil, errors.New("未配置云备份密钥")
	}

	url := fmt.Sprintf("%s/b/%s/latest", s.Config.JSONBinAPIURL, s.Config.JSONBinID)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Master-Key", s.Config.JSONBinSecret)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching backup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloud recovery failed with status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var record jsonBinRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("error parsing backup data: %w", err)
	}

	if err := s.ImportSnapshot(&record.Record); err != nil {
		return nil, err
	}
	return &record.Record, nil
}
