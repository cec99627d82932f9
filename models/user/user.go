package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account, looked up by email.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL  string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	LastLogIn time.Time          `bson:"last_log_in" json:"last_log_in"`
}
