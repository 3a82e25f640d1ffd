package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skilllab/internal/db"
	"github.com/skilllab/internal/locale"
)

// ErrVisitorRequired 表示访问偏好时缺少访客 id
var ErrVisitorRequired = errors.New("visitor id is required")

// PreferenceService 按访客持久化语言选择
type PreferenceService struct {
	db *gorm.DB
}

// NewPreferenceService 创建 PreferenceService
func NewPreferenceService(gdb *gorm.DB) *PreferenceService {
	return &PreferenceService{db: gdb}
}

// Language 返回访客已保存的语言，未保存时返回空字符串
func (s *PreferenceService) Language(visitorID string) (string, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return "", ErrVisitorRequired
	}

	var pref db.Preference
	err := s.db.Where("visitor_id = ?", visitorID).Take(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load preference %s: %w", visitorID, err)
	}
	return pref.Language, nil
}

// SetLanguage 新增或更新访客的语言
func (s *PreferenceService) SetLanguage(visitorID, language string) error {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return ErrVisitorRequired
	}
	code := locale.Code(strings.TrimSpace(language))
	if !code.Valid() {
		return fmt.Errorf("%w: %q", locale.ErrUnsupportedLanguage, language)
	}

	pref := db.Preference{VisitorID: visitorID, Language: code.String()}
	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "visitor_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"language":   code.String(),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&pref).Error; err != nil {
		return fmt.Errorf("upsert preference %s: %w", visitorID, err)
	}
	return nil
}

// Store 将服务适配为绑定单个访客的语言存储
func (s *PreferenceService) Store(visitorID string) locale.Store {
	return visitorStore{svc: s, visitorID: visitorID}
}

type visitorStore struct {
	svc       *PreferenceService
	visitorID string
}

func (v visitorStore) Load() (string, error) {
	if strings.TrimSpace(v.visitorID) == "" {
		return "", nil
	}
	return v.svc.Language(v.visitorID)
}

func (v visitorStore) Save(value string) error {
	return v.svc.SetLanguage(v.visitorID, value)
}
