package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Research status values
const (
	ResearchOngoing   = "Ongoing"
	ResearchCompleted = "Completed"
	ResearchPending   = "Pending"
	ResearchCancelled = "Cancelled"
)

// ValidResearchStatus reports whether s is a recognized research status.
func ValidResearchStatus(s string) bool {
	switch s {
	case ResearchOngoing, ResearchCompleted, ResearchPending, ResearchCancelled:
		return true
	}
	return false
}

// Attachment is one research project attachment. The file itself lives with
// the upload provider; only the hosted URL is stored here.
type Attachment struct {
	Name       string             `json:"name" bson:"name"`
	URL        string             `json:"url" bson:"url"`
	Type       string             `json:"type" bson:"type"`
	UploadedAt primitive.DateTime `json:"uploaded_at" bson:"uploaded_at"`
}

// Research holds the structure for the research collection in mongo
type Research struct {
	ID                    primitive.ObjectID  `json:"_id" bson:"_id"`
	Title                 string              `json:"title" bson:"title"`
	Description           string              `json:"description" bson:"description"`
	StartDate             primitive.DateTime  `json:"start_date" bson:"start_date"`
	EndDate               *primitive.DateTime `json:"end_date" bson:"end_date"`
	Status                string              `json:"status" bson:"status"`
	FundingSource         string              `json:"funding_source" bson:"funding_source"`
	PrincipalInvestigator primitive.ObjectID  `json:"principal_investigator_id" bson:"principal_investigator_id"`
	Department            primitive.ObjectID  `json:"department_id" bson:"department_id"`
	Attachments           []Attachment        `json:"attachments" bson:"attachments"`
	IsActive              bool                `json:"isActive" bson:"isActive"`
	IsDeleted             bool                `json:"isDeleted" bson:"isDeleted"`
	DeletedAt             *primitive.DateTime `json:"deletedAt" bson:"deletedAt"`
	CreatedAt             primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt             primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// ResearchListResponse is the paginated list envelope for research projects
type ResearchListResponse struct {
	Research   []Research `json:"research"`
	Pagination Pagination `json:"pagination"`
}
