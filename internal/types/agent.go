package types

import (
	"github.com/google/uuid"
)

type Agent struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"not null;column:name" json:"name"`
	Email string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
}

func (Agent) TableName() string {
	return "agent"
}
