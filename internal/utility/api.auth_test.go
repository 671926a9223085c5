// Package utility - Test hash mật khẩu và phát hành token.
package utility

import (
	"strings"
	"testing"
)

func TestGenerateSalt_NgauNhienVaDungDoDai(t *testing.T) {
	a, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt trả về lỗi: %v", err)
	}
	b, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt trả về lỗi: %v", err)
	}
	if len(a) != 32 {
		t.Errorf("Salt hex phải dài 32 ký tự, được %d", len(a))
	}
	if a == b {
		t.Error("Hai salt liên tiếp không được trùng nhau")
	}
}

func TestHashPassword_CungInputCungOutput(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt trả về lỗi: %v", err)
	}
	h1 := HashPassword("mat-khau-123", salt)
	h2 := HashPassword("mat-khau-123", salt)
	if h1 != h2 {
		t.Error("Cùng mật khẩu và salt phải cho cùng hash")
	}
	if h1 == HashPassword("mat-khau-123", "00000000000000000000000000000000") {
		t.Error("Salt khác phải cho hash khác")
	}
	if h1 == HashPassword("mat-khau-124", salt) {
		t.Error("Mật khẩu khác phải cho hash khác")
	}
}

func TestComparePassword(t *testing.T) {
	salt, _ := GenerateSalt()
	hashed := HashPassword("bi-mat", salt)
	if !ComparePassword("bi-mat", salt, hashed) {
		t.Error("Mật khẩu đúng phải khớp")
	}
	if ComparePassword("bi-mat-sai", salt, hashed) {
		t.Error("Mật khẩu sai không được khớp")
	}
}

func TestCreateToken(t *testing.T) {
	result, err := CreateToken("secret-test", "64f000000000000000000001", "18c1", "42")
	if err != nil {
		t.Fatalf("CreateToken trả về lỗi: %v", err)
	}
	token, ok := result["token"]
	if !ok || token == "" {
		t.Fatal("CreateToken phải trả về map có key 'token'")
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("Token JWT phải có 3 phần, được %q", token)
	}
}
