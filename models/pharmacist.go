package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Pharmacist holds the structure for the pharmacist collection in mongo.
// Pharmacists are soft-deleted and support explicit restore.
type Pharmacist struct {
	ID             primitive.ObjectID  `json:"_id" bson:"_id"`
	Name           string              `json:"name" bson:"name"`
	Email          string              `json:"email" bson:"email"`
	Phone          string              `json:"phone" bson:"phone"`
	LicenseNumber  string              `json:"licenseNumber" bson:"licenseNumber"`
	ProfilePic     string              `json:"profilePic" bson:"profilePic"`
	Experience     int                 `json:"experience" bson:"experience"`
	Qualifications []string            `json:"qualifications" bson:"qualifications"`
	Department     *primitive.ObjectID `json:"department" bson:"department"`
	Shift          string              `json:"shift" bson:"shift"`
	IsActive       bool                `json:"isActive" bson:"isActive"`
	IsDeleted      bool                `json:"isDeleted" bson:"isDeleted"`
	DeletedAt      *primitive.DateTime `json:"deletedAt" bson:"deletedAt"`
	CreatedAt      primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// PharmacistListResponse is the paginated list envelope for pharmacists
type PharmacistListResponse struct {
	Pharmacists []Pharmacist `json:"pharmacists"`
	Pagination  Pagination   `json:"pagination"`
}
