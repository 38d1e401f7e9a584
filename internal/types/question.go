package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StageID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"stage_id"`
	Stage     *Stage         `gorm:"constraint:OnDelete:CASCADE;foreignKey:StageID;references:ID" json:"stage,omitempty"`
	Text      string         `gorm:"column:text;not null" json:"text"`
	Position  int            `gorm:"column:position;not null;default:0" json:"position"`
	Tags      datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags,omitempty"`
	Options   []Option       `gorm:"foreignKey:QuestionID;references:ID" json:"options"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Question) TableName() string { return "question" }

// Option.CategoryID/CategoryName are meaningful only for OPINION_MULTIPLE
// questions and are never touched by answer-order randomization.
type Option struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"question_id"`
	Text         string         `gorm:"column:text;not null" json:"text"`
	Position     int            `gorm:"column:position;not null;default:0" json:"position"`
	CategoryID   *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	CategoryName string         `gorm:"column:category_name" json:"category_name,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Option) TableName() string { return "option" }

type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Category) TableName() string { return "category" }
