package db

import "gorm.io/gorm"

// Preference 记录访客显式选择的语言
type Preference struct {
	gorm.Model
	VisitorID string `gorm:"size:64;uniqueIndex;not null"`
	Language  string `gorm:"size:8;not null"`
}

func (Preference) TableName() string {
	return "preferences"
}
