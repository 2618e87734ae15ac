package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/hospital-api/config"
	"github.com/carelinkhq/hospital-api/databases"
	"github.com/carelinkhq/hospital-api/models"
)

// Research exported for testing purposes
type Research struct {
	DB     databases.ResearchDatabase
	Linker *databases.Linker
}

// ResearchListHandler returns a paginated list of research projects. The
// `name` filter matches the title and `doctor_id` the principal investigator.
func (re Research) ResearchListHandler(w http.ResponseWriter, r *http.Request) {
	lo := parseListOptions(r)
	research, pagination, err := re.DB.List(context.TODO(), lo)
	if err != nil {
		config.ErrorStatus("failed to get research projects", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(models.ResearchListResponse{Research: research, Pagination: pagination})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ResearchByIDHandler returns a research project by ID
func (re Research) ResearchByIDHandler(w http.ResponseWriter, r *http.Request) {
	researchID := mux.Vars(r)["research_id"]

	rID, err := primitive.ObjectIDFromHex(researchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := re.DB.FindOne(context.Background(), bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("failed to get research project by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// validateResearchRefs checks the principal investigator and department both
// resolve to live records.
func (re Research) validateResearchRefs(ctx context.Context, piID, deptID primitive.ObjectID) error {
	if _, err := re.Linker.Doctors.FindOne(ctx, bson.M{"_id": piID}); err != nil {
		return models.NewNotFound("doctor %s not found", piID.Hex())
	}
	if _, err := re.Linker.Departments.FindOne(ctx, bson.M{"_id": deptID}); err != nil {
		return models.NewNotFound("department %s not found", deptID.Hex())
	}
	return nil
}

// CreateResearchHandler creates a research project. The principal
// investigator and department must exist, and end_date, when set, must not
// precede start_date.
func (re Research) CreateResearchHandler(w http.ResponseWriter, r *http.Request) {
	var research models.Research
	if err := json.NewDecoder(r.Body).Decode(&research); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if research.Title == "" {
		respondError("title is required", w, models.NewInvalidArgument("title is required"))
		return
	}
	if research.Status == "" {
		research.Status = models.ResearchPending
	}
	if !models.ValidResearchStatus(research.Status) {
		respondError("invalid research status", w, models.NewInvalidArgument("status %q is not a recognized research status", research.Status))
		return
	}
	if research.EndDate != nil && *research.EndDate < research.StartDate {
		respondError("end_date precedes start_date", w, models.NewInvalidArgument("end_date must not precede start_date"))
		return
	}
	if research.PrincipalInvestigator.IsZero() || research.Department.IsZero() {
		respondError("principal_investigator_id and department_id are required", w, models.NewInvalidArgument("principal_investigator_id and department_id are required"))
		return
	}
	if err := re.validateResearchRefs(r.Context(), research.PrincipalInvestigator, research.Department); err != nil {
		respondError("failed to validate research references", w, err)
		return
	}

	research.ID = primitive.NewObjectID()
	research.Attachments = []models.Attachment{}
	research.IsActive = true
	research.IsDeleted = false
	research.DeletedAt = nil
	research.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	research.UpdatedAt = research.CreatedAt

	if _, err := re.DB.InsertOne(context.Background(), research); err != nil {
		config.ErrorStatus("failed to create research project", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Research project created successfully",
		"id":      research.ID.Hex(),
	})
}

// UpdateResearchHandler updates a research project. Reference and date
// changes are re-validated against the record as it will be after the update.
func (re Research) UpdateResearchHandler(w http.ResponseWriter, r *http.Request) {
	researchID := mux.Vars(r)["research_id"]

	rID, err := primitive.ObjectIDFromHex(researchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	existing, err := re.DB.FindOne(context.Background(), bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("failed to get research project by ID", http.StatusNotFound, w, err)
		return
	}

	if status, ok := updatedFields["status"].(string); ok && !models.ValidResearchStatus(status) {
		respondError("invalid research status", w, models.NewInvalidArgument("status %q is not a recognized research status", status))
		return
	}

	set := bson.M{}

	piID := existing.PrincipalInvestigator
	if raw, ok := updatedFields["principal_investigator_id"].(string); ok {
		piID, err = primitive.ObjectIDFromHex(raw)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		set["principal_investigator_id"] = piID
	}
	deptID := existing.Department
	if raw, ok := updatedFields["department_id"].(string); ok {
		deptID, err = primitive.ObjectIDFromHex(raw)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		set["department_id"] = deptID
	}
	if err := re.validateResearchRefs(r.Context(), piID, deptID); err != nil {
		respondError("failed to validate research references", w, err)
		return
	}

	startDate := existing.StartDate
	if raw, ok := updatedFields["start_date"].(string); ok {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError("start_date must be RFC 3339", w, models.NewInvalidArgument("start_date %q is not RFC 3339", raw))
			return
		}
		startDate = primitive.NewDateTimeFromTime(t)
		set["start_date"] = startDate
	}
	endDate := existing.EndDate
	if raw, ok := updatedFields["end_date"].(string); ok {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError("end_date must be RFC 3339", w, models.NewInvalidArgument("end_date %q is not RFC 3339", raw))
			return
		}
		d := primitive.NewDateTimeFromTime(t)
		endDate = &d
		set["end_date"] = d
	}
	if endDate != nil && *endDate < startDate {
		respondError("end_date precedes start_date", w, models.NewInvalidArgument("end_date must not precede start_date"))
		return
	}

	for _, k := range []string{"title", "description", "status", "funding_source"} {
		if v, ok := updatedFields[k]; ok {
			set[k] = v
		}
	}
	set["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	if err := re.DB.UpdateOne(context.Background(), bson.M{"_id": rID}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update research project", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Research project updated successfully",
	})
}

// DeleteResearchHandler soft-deletes a research project
func (re Research) DeleteResearchHandler(w http.ResponseWriter, r *http.Request) {
	researchID := mux.Vars(r)["research_id"]

	rID, err := primitive.ObjectIDFromHex(researchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := re.DB.FindOne(context.Background(), bson.M{"_id": rID}); err != nil {
		config.ErrorStatus("failed to get research project by ID", http.StatusNotFound, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	err = re.DB.UpdateOne(context.Background(), bson.M{"_id": rID}, bson.M{"$set": bson.M{
		"isDeleted": true,
		"deletedAt": now,
		"isActive":  false,
		"updatedAt": now,
	}})
	if err != nil {
		config.ErrorStatus("failed to delete research project", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Research project deleted successfully",
	})
}

// AddAttachmentHandler records a hosted file against the research project
func (re Research) AddAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	researchID := mux.Vars(r)["research_id"]

	rID, err := primitive.ObjectIDFromHex(researchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var attachment models.Attachment
	if err := json.NewDecoder(r.Body).Decode(&attachment); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if attachment.Name == "" || attachment.URL == "" {
		respondError("name and url are required", w, models.NewInvalidArgument("name and url are required"))
		return
	}
	attachment.UploadedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := re.DB.FindOne(context.Background(), bson.M{"_id": rID}); err != nil {
		config.ErrorStatus("failed to get research project by ID", http.StatusNotFound, w, err)
		return
	}

	err = re.DB.UpdateOne(context.Background(), bson.M{"_id": rID}, bson.M{
		"$push": bson.M{"attachments": attachment},
		"$set":  bson.M{"updatedAt": attachment.UploadedAt},
	})
	if err != nil {
		config.ErrorStatus("failed to add attachment", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Attachment added successfully",
	})
}

// RemoveAttachmentHandler pulls an attachment from the project by name
func (re Research) RemoveAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	researchID := vars["research_id"]
	attachmentName := vars["attachment_name"]

	rID, err := primitive.ObjectIDFromHex(researchID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := re.DB.FindOne(context.Background(), bson.M{"_id": rID}); err != nil {
		config.ErrorStatus("failed to get research project by ID", http.StatusNotFound, w, err)
		return
	}

	err = re.DB.UpdateOne(context.Background(), bson.M{"_id": rID}, bson.M{
		"$pull": bson.M{"attachments": bson.M{"name": attachmentName}},
		"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	})
	if err != nil {
		config.ErrorStatus("failed to remove attachment", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Attachment removed successfully",
	})
}
