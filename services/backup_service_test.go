package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"haripg-http-service/config"
	"haripg-http-service/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newBackupTestDB 构造一个迁移完成的内存数据库
func newBackupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Floor{}, &models.Room{}, &models.Resident{},
		&models.Receipt{}, &models.RentAlertDismissal{}, &models.AppSettings{},
	); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

func TestCloudBackupRequiresCredentials(t *testing.T) {
	svc := &BackupService{Config: &config.Config{}}

	if err := svc.CloudUpload(); err == nil {
		t.Error("未配置密钥时上传应该报错")
	}
	if _, err := svc.CloudDownload(); err == nil {
		t.Error("未配置密钥时下载应该报错")
	}
}

func TestImportSnapshotRejectsNil(t *testing.T) {
	svc := &BackupService{}
	if err := svc.ImportSnapshot(nil); err == nil {
		t.Error("空快照应该报错")
	}
}

func TestCloudUploadWireFormat(t *testing.T) {
	db := newBackupTestDB(t)

	floor := models.Floor{
		FloorNumber: "Floor 1",
		Rooms: []models.Room{
			{RoomNumber: "101", Residents: []models.Resident{{Name: "Alice", JoiningDate: "2024-01-10"}}},
		},
	}
	if err := db.Create(&floor).Error; err != nil {
		t.Fatalf("创建楼层失败: %v", err)
	}
	if err := db.Create(&models.Receipt{ResidentName: "Alice", Date: "2024-02-10"}).Error; err != nil {
		t.Fatalf("创建收据失败: %v", err)
	}

	var gotMethod, gotPath, gotKey string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Master-Key")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := &BackupService{
		DB: db,
		Config: &config.Config{
			JSONBinAPIURL: srv.URL,
			JSONBinID:     "bin123",
			JSONBinSecret: "key123",
		},
		HTTPClient: srv.Client(),
	}

	if err := svc.CloudUpload(); err != nil {
		t.Fatalf("上传失败: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/b/bin123" {
		t.Errorf("请求不符: %s %s, 期望 PUT /b/bin123", gotMethod, gotPath)
	}
	if gotKey != "key123" {
		t.Errorf("X-Master-Key = %q, 期望 %q", gotKey, "key123")
	}

	var snap Snapshot
	if err := json.Unmarshal(gotBody, &snap); err != nil {
		t.Fatalf("请求体不是合法的快照JSON: %v", err)
	}
	if snap.SnapshotID == "" {
		t.Error("快照应带有ID")
	}
	if len(snap.Floors) != 1 || len(snap.Floors[0].Rooms) != 1 || len(snap.Receipts) != 1 {
		t.Errorf("快照内容不符: floors=%d receipts=%d", len(snap.Floors), len(snap.Receipts))
	}
}

func TestCloudDownloadUnwrapsRecord(t *testing.T) {
	db := newBackupTestDB(t)

	// 预置一条旧数据，下载恢复后应被整体替换
	if err := db.Create(&models.Floor{FloorNumber: "Old Floor"}).Error; err != nil {
		t.Fatalf("创建旧楼层失败: %v", err)
	}

	record := jsonBinRecord{
		Record: Snapshot{
			SnapshotID: "snap-1",
			Floors: []models.Floor{
				{FloorNumber: "Floor 1", Rooms: []models.Room{
					{RoomNumber: "101", Residents: []models.Resident{{Name: "Alice", JoiningDate: "2024-01-10"}}},
				}},
			},
			Receipts: []models.Receipt{{ResidentName: "Alice", Date: "2024-02-10"}},
		},
	}

	var gotMethod, gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Master-Key")
		json.NewEncoder(w).Encode(record)
	}))
	defer srv.Close()

	svc := &BackupService{
		DB: db,
		Config: &config.Config{
			JSONBinAPIURL: srv.URL,
			JSONBinID:     "bin123",
			JSONBinSecret: "key123",
		},
		HTTPClient: srv.Client(),
	}

	snap, err := svc.CloudDownload()
	if err != nil {
		t.Fatalf("下载失败: %v", err)
	}

	if gotMethod != http.MethodGet || gotPath != "/b/bin123/latest" {
		t.Errorf("请求不符: %s %s, 期望 GET /b/bin123/latest", gotMethod, gotPath)
	}
	if gotKey != "key123" {
		t.Errorf("X-Master-Key = %q, 期望 %q", gotKey, "key123")
	}
	if snap.SnapshotID != "snap-1" {
		t.Errorf("record包装未被解开: %+v", snap)
	}

	// 恢复后数据库只剩快照里的数据
	var floors []models.Floor
	if err := db.Preload("Rooms.Residents").Find(&floors).Error; err != nil {
		t.Fatalf("查询楼层失败: %v", err)
	}
	if len(floors) != 1 || floors[0].FloorNumber != "Floor 1" {
		t.Fatalf("旧数据应被替换: %+v", floors)
	}
	if len(floors[0].Rooms) != 1 || len(floors[0].Rooms[0].Residents) != 1 {
		t.Errorf("嵌套数据未恢复: %+v", floors[0])
	}

	var receiptCount int64
	db.Model(&models.Receipt{}).Count(&receiptCount)
	if receiptCount != 1 {
		t.Errorf("收据数量 = %d, 期望 1", receiptCount)
	}
}
