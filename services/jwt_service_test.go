package services

import (
	"testing"

	"haripg-http-service/config"
)

func TestJWTGenerateAndExtract(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret-key"}
	svc := NewJWTService(cfg)

	token, err := svc.GenerateToken(42, "admin")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if token == "" {
		t.Fatal("令牌不应为空")
	}

	claims, err := svc.ExtractClaims(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "admin" {
		t.Errorf("令牌声明不符: %+v", claims)
	}
}

func TestJWTValidateRejectsTampered(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret-key"}
	svc := NewJWTService(cfg)

	token, err := svc.GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	// 换一个密钥的服务应该拒绝这个令牌
	other := NewJWTService(&config.Config{JWTSecretKey: "another-secret"})
	if _, err := other.ExtractClaims(token); err == nil {
		t.Error("不同密钥签发的令牌应该被拒绝")
	}

	// 被篡改的令牌同样被拒绝
	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Error("被篡改的令牌应该被拒绝")
	}
}
