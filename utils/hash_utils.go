package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashedPasswordLength bcrypt输出的固定长度，用于区分明文和哈希
const HashedPasswordLength = 60

// HashPassword 使用 bcrypt 对密码进行哈希处理
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash 比较密码和哈希值
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsHashed 判断一个密码字符串是否已经是bcrypt哈希。
// 模型钩子用它避免把已哈希的密码再次哈希
func IsHashed(password string) bool {
	return len(password) >= HashedPasswordLength
}
