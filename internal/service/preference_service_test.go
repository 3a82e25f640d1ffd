package service

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skilllab/internal/db"
	"github.com/skilllab/internal/locale"
)

func setupPreferenceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Preference{}); err != nil {
		t.Fatalf("failed to migrate preferences: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestPreferenceServiceRoundTrip(t *testing.T) {
	svc := NewPreferenceService(setupPreferenceTestDB(t))

	lang, err := svc.Language("visitor-1")
	if err != nil || lang != "" {
		t.Fatalf("expected no preference, got %q (%v)", lang, err)
	}

	if err := svc.SetLanguage("visitor-1", "en"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.SetLanguage("visitor-1", "ko"); err != nil {
		t.Fatalf("update: %v", err)
	}
	lang, err = svc.Language("visitor-1")
	if err != nil || lang != "ko" {
		t.Fatalf("expected ko, got %q (%v)", lang, err)
	}

	var count int64
	svc.db.Model(&db.Preference{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single row per visitor, got %d", count)
	}
}

func TestPreferenceServiceValidation(t *testing.T) {
	svc := NewPreferenceService(setupPreferenceTestDB(t))

	if err := svc.SetLanguage("", "en"); !errors.Is(err, ErrVisitorRequired) {
		t.Fatalf("expected ErrVisitorRequired, got %v", err)
	}
	if err := svc.SetLanguage("visitor-2", "fr"); !errors.Is(err, locale.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
	if _, err := svc.Language("  "); !errors.Is(err, ErrVisitorRequired) {
		t.Fatalf("expected ErrVisitorRequired, got %v", err)
	}
}

func TestPreferenceStoreBacksResolver(t *testing.T) {
	svc := NewPreferenceService(setupPreferenceTestDB(t))

	resolver := locale.NewResolver(svc.Store("visitor-3"), locale.WithSignal(func() string { return "ko-KR" }))
	if got := resolver.Context().Current(); got != locale.LanguageKorean {
		t.Fatalf("expected signal language, got %s", got)
	}
	if err := resolver.SetLanguage("en"); err != nil {
		t.Fatalf("set language: %v", err)
	}

	reloaded := locale.NewResolver(svc.Store("visitor-3"), locale.WithSignal(func() string { return "ko-KR" }))
	if got := reloaded.Context().Current(); got != locale.LanguageEnglish {
		t.Fatalf("expected stored language after reload, got %s", got)
	}

	anonymous := svc.Store("")
	if value, err := anonymous.Load(); err != nil || value != "" {
		t.Fatalf("anonymous store should be empty, got %q (%v)", value, err)
	}
}
