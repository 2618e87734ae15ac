package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Appointment status values
const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

// Appointment holds the structure for the appointment collection in mongo.
// Date is the calendar date in YYYY-MM-DD form and Slot is the HH:MM start
// time produced by the slot resolver.
type Appointment struct {
	ID         primitive.ObjectID  `json:"_id" bson:"_id"`
	Doctor     primitive.ObjectID  `json:"doctor" bson:"doctor"`
	Patient    primitive.ObjectID  `json:"patient" bson:"patient"`
	Department *primitive.ObjectID `json:"department" bson:"department"`
	Date       string              `json:"date" bson:"date"`
	Slot       string              `json:"slot" bson:"slot"`
	Reason     string              `json:"reason" bson:"reason"`
	Status     string              `json:"status" bson:"status"`
	Notes      string              `json:"notes" bson:"notes"`
	CreatedAt  primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// AppointmentListResponse is the paginated list envelope for appointments
type AppointmentListResponse struct {
	Appointments []Appointment `json:"appointments"`
	Pagination   Pagination    `json:"pagination"`
}
