package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Candidate.TestID is nullable on purpose: its absence at resolution time is
// the trigger for the self-healing association scan. Once healed it is never
// cleared by the engine.
type Candidate struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string         `gorm:"column:email;index" json:"email"`
	Name           string         `gorm:"column:name" json:"name"`
	TestID         *uuid.UUID     `gorm:"type:uuid;index" json:"test_id,omitempty"`
	Test           *Test          `gorm:"constraint:OnDelete:SET NULL;foreignKey:TestID;references:ID" json:"test,omitempty"`
	ProcessID      *uuid.UUID     `gorm:"type:uuid;index" json:"process_id,omitempty"`
	Process        *Process       `gorm:"constraint:OnDelete:SET NULL;foreignKey:ProcessID;references:ID" json:"process,omitempty"`
	InviteCodeHash string         `gorm:"column:invite_code_hash" json:"-"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Candidate) TableName() string { return "candidate" }

type Process struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Stages    []ProcessStage `gorm:"foreignKey:ProcessID;references:ID" json:"stages,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Process) TableName() string { return "process" }

type ProcessStage struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProcessID uuid.UUID      `gorm:"type:uuid;not null;index" json:"process_id"`
	Position  int            `gorm:"column:position;not null;default:0" json:"position"`
	Name      string         `gorm:"column:name" json:"name"`
	TestID    *uuid.UUID     `gorm:"type:uuid;index" json:"test_id,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProcessStage) TableName() string { return "process_stage" }
