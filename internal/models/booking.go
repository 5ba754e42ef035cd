package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking is a patient's claim on one slot of a treatment for one date.
// (Treatment, Date, Patient) is unique across the collection; Slot is not
// part of the key.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TreatmentID string             `bson:"treatmentId,omitempty" json:"treatmentId,omitempty"`
	Treatment   string             `bson:"treatment" json:"treatment"`
	Date        string             `bson:"date" json:"date"`
	Slot        string             `bson:"slot" json:"slot"`
	Patient     string             `bson:"patient" json:"patient"`
	PatientName string             `bson:"patientName,omitempty" json:"patientName,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
}
