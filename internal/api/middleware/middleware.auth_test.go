// Package middleware - Test bảng phân quyền theo vai trò.
package middleware

import "testing"

func TestRoleHasPermission_Admin(t *testing.T) {
	for _, p := range []string{"User.Insert", "User.Block", "Scratchoff.Pack.Activate", "Scratchoff.Slot.Update"} {
		if !roleHasPermission("admin", p) {
			t.Errorf("admin phải có quyền %q", p)
		}
	}
}

func TestRoleHasPermission_Manager(t *testing.T) {
	allowed := []string{
		"Scratchoff.Slot.Insert",
		"Scratchoff.Product.Update",
		"Scratchoff.Snapshot.Baseline",
		"Scratchoff.Calculation.Recalculate",
	}
	for _, p := range allowed {
		if !roleHasPermission("manager", p) {
			t.Errorf("manager phải có quyền %q", p)
		}
	}
	denied := []string{"User.Insert", "User.Block", "User.SetRole", "Init.Data"}
	for _, p := range denied {
		if roleHasPermission("manager", p) {
			t.Errorf("manager không được có quyền %q", p)
		}
	}
}

func TestRoleHasPermission_Associate(t *testing.T) {
	allowed := []string{
		"Scratchoff.Slot.Read",
		"Scratchoff.Calculation.Read",
		"Scratchoff.Pack.Activate",
		"Scratchoff.Snapshot.Insert",
		"Scratchoff.PackEvent.Insert",
	}
	for _, p := range allowed {
		if !roleHasPermission("associate", p) {
			t.Errorf("associate phải có quyền %q", p)
		}
	}
	denied := []string{
		"Scratchoff.Slot.Insert",
		"Scratchoff.Slot.Update",
		"Scratchoff.Product.Update",
		"Scratchoff.Snapshot.Baseline",
		"Scratchoff.Pack.Return",
		"User.Insert",
	}
	for _, p := range denied {
		if roleHasPermission("associate", p) {
			t.Errorf("associate không được có quyền %q", p)
		}
	}
}

func TestRoleHasPermission_RoleLa(t *testing.T) {
	if roleHasPermission("ghost", "Scratchoff.Slot.Read") {
		t.Error("Vai trò không xác định không được có quyền nào")
	}
}
