package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleAdmin is the only privileged role. Any other value, including an
// absent role field, is treated as a regular user.
const RoleAdmin = "admin"

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
