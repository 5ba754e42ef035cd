package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is a treatment type with its fixed daily slot template.
type Service struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Slots []string           `bson:"slots" json:"slots"`
}
