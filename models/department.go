package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Department holds the structure for the department collection in mongo.
//
// Doctors, Nurses and Pharmacists carry the ids of staff whose own
// `department` field points back here; the pairs are kept consistent
// best-effort (sequential writes, no transaction).
type Department struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id"`
	Name         string               `json:"name" bson:"name"`
	Description  string               `json:"description" bson:"description"`
	Timings      string               `json:"timings" bson:"timings"`
	Services     []string             `json:"services" bson:"services"`
	Doctors      []primitive.ObjectID `json:"doctors" bson:"doctors"`
	Nurses       []primitive.ObjectID `json:"nurses" bson:"nurses"`
	Pharmacists  []primitive.ObjectID `json:"pharmacists" bson:"pharmacists"`
	Appointments []primitive.ObjectID `json:"appointments" bson:"appointments"`
	IsActive     bool                 `json:"isActive" bson:"isActive"`
	IsDeleted    bool                 `json:"isDeleted" bson:"isDeleted"`
	DeletedAt    *primitive.DateTime  `json:"deletedAt" bson:"deletedAt"`
	CreatedAt    primitive.DateTime   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime   `json:"updatedAt" bson:"updatedAt"`
}

// DepartmentListResponse is the paginated list envelope for departments
type DepartmentListResponse struct {
	Departments []Department `json:"departments"`
	Pagination  Pagination   `json:"pagination"`
}
