package models

import (
	"testing"

	"haripg-http-service/utils"
)

// GORM在Create时依次执行BeforeSave和BeforeCreate，
// 两个钩子都不应把已哈希的密码再次哈希。
func TestAdminHooksPreserveHashedPassword(t *testing.T) {
	hashed, err := utils.HashPassword("admin123")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}

	admin := Admin{Username: "admin", Password: hashed}
	if err := admin.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave失败: %v", err)
	}
	if err := admin.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate失败: %v", err)
	}

	if admin.Password != hashed {
		t.Error("已哈希的密码不应被钩子改动")
	}
	if !utils.CheckPasswordHash("admin123", admin.Password) {
		t.Errorf("入库后的密码无法用明文校验: stored=%q", admin.Password)
	}
}

func TestAdminHooksHashPlaintextOnce(t *testing.T) {
	admin := Admin{Username: "admin", Password: "admin123"}
	if err := admin.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave失败: %v", err)
	}
	if err := admin.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate失败: %v", err)
	}

	if admin.Password == "admin123" {
		t.Fatal("明文密码应该被哈希")
	}
	if !utils.CheckPasswordHash("admin123", admin.Password) {
		t.Error("哈希后的密码应该能用明文校验")
	}
}
