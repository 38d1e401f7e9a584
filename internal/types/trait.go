package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TraitGroup struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string             `gorm:"column:name;not null" json:"name"`
	AvailableTraits datatypes.JSON     `gorm:"column:available_traits;type:jsonb" json:"available_traits"`
	Selected        []PersonalityTrait `gorm:"foreignKey:GroupID;references:ID" json:"selected,omitempty"`
	CreatedAt       time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

func (TraitGroup) TableName() string { return "trait_group" }

// PersonalityTrait.Order is a dense 1..N priority within one group; Weight is
// a function of Order (see services.NormalizeWeights). Weights are never
// compared across groups.
type PersonalityTrait struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	GroupName string         `gorm:"column:group_name" json:"group_name"`
	TraitName string         `gorm:"column:trait_name;not null" json:"trait_name"`
	Weight    float64        `gorm:"column:weight;not null;default:0" json:"weight"`
	Order     int            `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PersonalityTrait) TableName() string { return "personality_trait" }
