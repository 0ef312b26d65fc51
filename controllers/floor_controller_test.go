package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"haripg-http-service/config"
	"haripg-http-service/models"
	"haripg-http-service/services"
	"haripg-http-service/services/container"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestContainer 构造内存数据库加内存Redis的测试容器
func newTestContainer(t *testing.T) (*container.ServiceContainer, services.InterfaceRedisService) {
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

	mr := miniredis.RunT(t)
	host, port, ok := strings.Cut(mr.Addr(), ":")
	if !ok {
		t.Fatalf("无法解析Redis地址: %s", mr.Addr())
	}
	cfg := &config.Config{RedisHost: host, RedisPort: port}

	sc := container.NewServiceContainer(db, cfg, nil)
	return sc, sc.GetService("redis").(services.InterfaceRedisService)
}

// seedDueCache 预置一份欠租缓存并确认写入成功
func seedDueCache(t *testing.T, redisService services.InterfaceRedisService) {
	t.Helper()
	if err := redisService.CacheDueList(map[string]interface{}{"dues": []string{}}); err != nil {
		t.Fatalf("预置缓存失败: %v", err)
	}
	var cached map[string]interface{}
	if err := redisService.GetCachedDueList(&cached); err != nil {
		t.Fatalf("读取预置缓存失败: %v", err)
	}
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateFloorInvalidatesDueCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sc, redisService := newTestContainer(t)
	seedDueCache(t, redisService)

	r := gin.New()
	r.POST("/floors", HandleFloorFunc(sc, "createFloor"))

	w := doJSON(r, http.MethodPost, "/floors", `{"floor_number": "Floor 1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("状态码 = %d, 期望 201: %s", w.Code, w.Body.String())
	}

	var cached map[string]interface{}
	if err := redisService.GetCachedDueList(&cached); err == nil {
		t.Error("创建楼层后统计已变化，缓存应被清除")
	}
}

func TestCreateRoomInvalidatesDueCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sc, redisService := newTestContainer(t)

	floor := models.Floor{FloorNumber: "Floor 1"}
	if err := sc.GetDB().Create(&floor).Error; err != nil {
		t.Fatalf("创建楼层失败: %v", err)
	}

	seedDueCache(t, redisService)

	r := gin.New()
	r.POST("/rooms", HandleRoomFunc(sc, "createRoom"))

	body := fmt.Sprintf(`{"room_number": "101", "floor_id": %d}`, floor.ID)
	w := doJSON(r, http.MethodPost, "/rooms", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("状态码 = %d, 期望 201: %s", w.Code, w.Body.String())
	}

	var cached map[string]interface{}
	if err := redisService.GetCachedDueList(&cached); err == nil {
		t.Error("创建房间后统计已变化，缓存应被清除")
	}
}
