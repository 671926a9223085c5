package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func fireEntry(t *testing.T, hook *FilterHook, fields logrus.Fields) logrus.Fields {
	t.Helper()
	entry := &logrus.Entry{
		Level: logrus.InfoLevel,
		Data:  fields,
	}
	if err := hook.Fire(entry); err != nil {
		t.Fatalf("Fire trả về lỗi: %v", err)
	}
	return entry.Data
}

func TestDefaultConfigCoDuCacTruongFilter(t *testing.T) {
	cfg := DefaultConfig()
	filters := map[string]string{
		"FilterModules":     cfg.FilterModules,
		"FilterCollections": cfg.FilterCollections,
		"FilterEndpoints":   cfg.FilterEndpoints,
		"FilterMethods":     cfg.FilterMethods,
		"FilterLogTypes":    cfg.FilterLogTypes,
	}
	for name, value := range filters {
		if value != "*" {
			t.Errorf("%s mặc định phải là \"*\", nhận được %q", name, value)
		}
	}
}

func TestDefaultConfigDocFilterTuEnv(t *testing.T) {
	t.Setenv("LOG_FILTER_MODULES", "auth,scratchoff")
	cfg := DefaultConfig()
	if cfg.FilterModules != "auth,scratchoff" {
		t.Errorf("FilterModules phải đọc từ env, nhận được %q", cfg.FilterModules)
	}
}

func TestFilterHookMacDinhChoPhepTatCa(t *testing.T) {
	hook := NewFilterHook(DefaultConfig())
	data := fireEntry(t, hook, logrus.Fields{"module": "scratchoff", "collection": "scratchoff_packs"})
	if data["_filtered"] == true {
		t.Error("cấu hình mặc định không được lọc entry nào")
	}
}

func TestFilterHookLocTheoModule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FilterModules = "auth"
	hook := NewFilterHook(cfg)

	data := fireEntry(t, hook, logrus.Fields{"module": "scratchoff"})
	if data["_filtered"] != true {
		t.Error("module ngoài danh sách phải bị đánh dấu _filtered")
	}

	data = fireEntry(t, hook, logrus.Fields{"module": "auth"})
	if data["_filtered"] == true {
		t.Error("module trong danh sách không được bị lọc")
	}

	// Entry không có field module thì bỏ qua filter
	data = fireEntry(t, hook, logrus.Fields{})
	if data["_filtered"] == true {
		t.Error("entry không có module không được bị lọc")
	}
}

func TestFilterHookLocTheoLogType(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FilterLogTypes = "error,warning"
	hook := NewFilterHook(cfg)

	data := fireEntry(t, hook, logrus.Fields{})
	if data["_filtered"] != true {
		t.Error("log info phải bị lọc khi chỉ cho phép error/warning")
	}

	entry := &logrus.Entry{Level: logrus.ErrorLevel, Data: logrus.Fields{}}
	if err := hook.Fire(entry); err != nil {
		t.Fatalf("Fire trả về lỗi: %v", err)
	}
	if entry.Data["_filtered"] == true {
		t.Error("log error không được bị lọc")
	}
}
