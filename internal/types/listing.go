package types

import (
	"github.com/google/uuid"
)

// Listing is the relational record. The city column always holds the
// lower-cased form; display casing is applied by the response formatter.
type Listing struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string    `gorm:"size:255;not null;column:title" json:"title"`
	City     string    `gorm:"size:255;not null;column:city" json:"city"`
	Price    float64   `gorm:"type:decimal(10,2);not null;column:price" json:"price"`
	Bedrooms int       `gorm:"not null;column:bedrooms" json:"bedrooms"`
	AgentID  uuid.UUID `gorm:"type:uuid;not null;index;column:agent_id" json:"agent_id"`
	Agent    *Agent    `gorm:"foreignKey:AgentID;references:ID" json:"agent,omitempty"`
}

func (Listing) TableName() string {
	return "listing"
}
