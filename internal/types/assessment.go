package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice  QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeOpinionMultiple QuestionType = "OPINION_MULTIPLE"
)

type Test struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"column:title;not null" json:"title"`
	StageLinks []TestStage    `gorm:"foreignKey:TestID;references:ID" json:"stage_links,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Test) TableName() string { return "test" }

// TestStage links a reusable Stage into one Test's ordered sequence.
// Order is 0-based, dense, and unique within a test.
type TestStage struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TestID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uniq_test_stage_order" json:"test_id"`
	Test      *Test          `gorm:"constraint:OnDelete:CASCADE;foreignKey:TestID;references:ID" json:"test,omitempty"`
	StageID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"stage_id"`
	Stage     *Stage         `gorm:"constraint:OnDelete:CASCADE;foreignKey:StageID;references:ID" json:"stage,omitempty"`
	Order     int            `gorm:"column:order;not null;uniqueIndex:uniq_test_stage_order" json:"order"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TestStage) TableName() string { return "test_stage" }

type Stage struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Description  string         `gorm:"column:description" json:"description"`
	QuestionType QuestionType   `gorm:"column:question_type;not null;default:'MULTIPLE_CHOICE'" json:"question_type"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Stage) TableName() string { return "stage" }
