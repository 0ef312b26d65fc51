package utils

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}
	if hash == "admin123" {
		t.Error("哈希结果不应等于明文")
	}

	if !CheckPasswordHash("admin123", hash) {
		t.Error("正确密码应该校验通过")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("错误密码不应校验通过")
	}
}

func TestIsHashed(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("哈希密码失败: %v", err)
	}
	if !IsHashed(hash) {
		t.Error("bcrypt哈希应被识别为已哈希")
	}
	if IsHashed("admin123") {
		t.Error("明文不应被识别为已哈希")
	}
}
