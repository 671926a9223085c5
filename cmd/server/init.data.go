package main

import (
	scratchoffsvc "scratch_portal/internal/api/scratchoff/service"
	"scratch_portal/internal/logger"
)

// InitDefaultData đăng ký các hook phản ứng theo thay đổi dữ liệu.
// Không seed user: user đầu tiên đăng ký sẽ tự động trở thành admin.
func InitDefaultData() {
	log := logger.GetAppLogger()

	if err := scratchoffsvc.RegisterDataChangeHooks(); err != nil {
		log.Fatalf("Failed to register data change hooks: %v", err)
	}
	log.Info("Registered data change hooks")

	log.Info("User đầu tiên đăng ký sẽ tự động trở thành admin (First user becomes admin)")
}
