package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AvailableSlot is one weekly availability entry on a doctor, e.g.
// {Day: "Monday", Time: "10AM-2PM"}. The time range is free text and is
// expanded into bookable slots by the schedule package.
type AvailableSlot struct {
	Day  string `json:"day" bson:"day"`
	Time string `json:"time" bson:"time"`
}

// Doctor holds the structure for the doctor collection in mongo. Doctors are
// hard-deleted rather than soft-deleted.
type Doctor struct {
	ID             primitive.ObjectID   `json:"_id" bson:"_id"`
	Name           string               `json:"name" bson:"name"`
	Email          string               `json:"email" bson:"email"`
	Phone          string               `json:"phone" bson:"phone"`
	Specialization string               `json:"specialization" bson:"specialization"`
	ProfilePic     string               `json:"profilePic" bson:"profilePic"`
	Experience     int                  `json:"experience" bson:"experience"`
	Qualifications []string             `json:"qualifications" bson:"qualifications"`
	Department     *primitive.ObjectID  `json:"department" bson:"department"`
	AvailableSlots []AvailableSlot      `json:"availableSlots" bson:"availableSlots"`
	Patients       []primitive.ObjectID `json:"patients" bson:"patients"`
	IsActive       bool                 `json:"isActive" bson:"isActive"`
	CreatedAt      primitive.DateTime   `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime   `json:"updatedAt" bson:"updatedAt"`
}

// DoctorListResponse is the paginated list envelope for doctors
type DoctorListResponse struct {
	Doctors    []Doctor   `json:"doctors"`
	Pagination Pagination `json:"pagination"`
}

// SlotsResponse is returned by the doctor slots endpoint
type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
