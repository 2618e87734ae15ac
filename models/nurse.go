package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Shift values for nurses and pharmacists
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"
	ShiftRotating  = "rotating"
)

// ValidShift reports whether s is one of the recognized shift values.
func ValidShift(s string) bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight, ShiftRotating:
		return true
	}
	return false
}

// Nurse holds the structure for the nurse collection in mongo. Nurses are
// deactivated (isActive=false) rather than soft-deleted.
type Nurse struct {
	ID             primitive.ObjectID  `json:"_id" bson:"_id"`
	Name           string              `json:"name" bson:"name"`
	Email          string              `json:"email" bson:"email"`
	Phone          string              `json:"phone" bson:"phone"`
	Specialization string              `json:"specialization" bson:"specialization"`
	ProfilePic     string              `json:"profilePic" bson:"profilePic"`
	Experience     int                 `json:"experience" bson:"experience"`
	Qualifications []string            `json:"qualifications" bson:"qualifications"`
	Department     *primitive.ObjectID `json:"department" bson:"department"`
	Shift          string              `json:"shift" bson:"shift"`
	IsActive       bool                `json:"isActive" bson:"isActive"`
	CreatedAt      primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// NurseListResponse is the paginated list envelope for nurses
type NurseListResponse struct {
	Nurses     []Nurse    `json:"nurses"`
	Pagination Pagination `json:"pagination"`
}
