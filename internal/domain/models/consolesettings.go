// internal/domain/models/consolesettings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConsoleSettings holds per-instance state that outlives any admin session.
// There is one document per console instance name.
type ConsoleSettings struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Instance string             `bson:"instance" json:"instance"`

	// SignupCompleted hides the signup form once the first admin has been
	// created through this console.
	SignupCompleted   bool       `bson:"signup_completed" json:"signup_completed"`
	SignupCompletedAt *time.Time `bson:"signup_completed_at,omitempty" json:"signup_completed_at,omitempty"`
	SignupEmail       string     `bson:"signup_email,omitempty" json:"signup_email,omitempty"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
