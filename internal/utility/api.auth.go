// Package utility - các hàm hỗ trợ xác thực: tạo JWT token, băm mật khẩu.
package utility

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/pbkdf2"
)

const pbkdf2Iterations = 10000

// tokenClaims là payload được mã hóa trong JWT token.
type tokenClaims struct {
	UserID       string `json:"userId"`
	Time         string `json:"time"`
	RandomNumber string `json:"randomNumber"`
	jwt.StandardClaims
}

// CreateToken tạo JWT token (HS256) cho người dùng.
// @params: secret - khóa ký token, userID - ID người dùng, timeStr - thời điểm tạo (hex), randomNumber - số ngẫu nhiên chống trùng
// @returns: map chứa key "token", error nếu ký thất bại
func CreateToken(secret string, userID string, timeStr string, randomNumber string) (map[string]string, error) {
	claims := tokenClaims{
		UserID:       userID,
		Time:         timeStr,
		RandomNumber: randomNumber,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	return map[string]string{"token": signed}, nil
}

// GenerateSalt sinh salt ngẫu nhiên (hex) dùng cho băm mật khẩu.
func GenerateSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword băm mật khẩu với salt bằng PBKDF2-SHA256.
func HashPassword(password string, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, 32, sha256.New)
	return hex.EncodeToString(key)
}

// ComparePassword so sánh mật khẩu với hash đã lưu (constant time).
func ComparePassword(password string, salt string, hashed string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashed)) == 1
}
