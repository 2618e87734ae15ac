package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinkhq/hospital-api/models"
)

// List defaults
const (
	DefaultPage  = int64(1)
	DefaultLimit = int64(10)
)

// ListOptions enumerates every recognized list filter and its effect. It
// replaces ad hoc key-value query maps with a typed configuration: unknown
// parameters simply have no field here.
type ListOptions struct {
	// Page is 1-based; values < 1 fall back to DefaultPage.
	Page int64
	// Limit is the page size; values < 1 fall back to DefaultLimit.
	Limit int64
	// Name matches as a case-insensitive substring on the name field.
	Name string
	// Status matches exactly.
	Status string
	// DoctorID and DepartmentID match exactly on the corresponding
	// reference field; malformed hex ids are ignored rather than matched.
	DoctorID     string
	DepartmentID string
	// SortBy defaults to createdAt, SortOrder to desc.
	SortBy    string
	SortOrder string
	// IncludeDeleted, when set, overrides the default soft-delete
	// exclusion with an explicit isDeleted match.
	IncludeDeleted *bool
	// NameKey, DoctorKey and DepartmentKey name the bson fields the
	// name/id filters apply to; they default to "name", "doctor" and
	// "department".
	NameKey       string
	DoctorKey     string
	DepartmentKey string
}

func (o *ListOptions) normalize() {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.SortBy == "" {
		o.SortBy = "createdAt"
	}
	if o.SortOrder != "asc" {
		o.SortOrder = "desc"
	}
	if o.NameKey == "" {
		o.NameKey = "name"
	}
	if o.DoctorKey == "" {
		o.DoctorKey = "doctor"
	}
	if o.DepartmentKey == "" {
		o.DepartmentKey = "department"
	}
}

// Filter builds the bson filter matching these options. The same filter is
// used for both the page slice and the total count, so pagination metadata
// always agrees with the returned records.
func (o ListOptions) Filter() bson.M {
	o.normalize()
	filter := bson.M{}
	if o.Name != "" {
		filter[o.NameKey] = bson.M{"$regex": o.Name, "$options": "i"}
	}
	if o.Status != "" {
		filter["status"] = o.Status
	}
	if o.DoctorID != "" {
		if id, err := primitive.ObjectIDFromHex(o.DoctorID); err == nil {
			filter[o.DoctorKey] = id
		}
	}
	if o.DepartmentID != "" {
		if id, err := primitive.ObjectIDFromHex(o.DepartmentID); err == nil {
			filter[o.DepartmentKey] = id
		}
	}
	if o.IncludeDeleted != nil {
		filter["isDeleted"] = *o.IncludeDeleted
	}
	return filter
}

// FindOptions builds the sort/skip/limit options for the page slice.
func (o ListOptions) FindOptions() *options.FindOptions {
	o.normalize()
	order := -1
	if o.SortOrder == "asc" {
		order = 1
	}
	skip := (o.Page - 1) * o.Limit
	limit := o.Limit
	return &options.FindOptions{
		Sort:  bson.D{{Key: o.SortBy, Value: order}},
		Skip:  &skip,
		Limit: &limit,
	}
}

// Pagination builds the paging metadata for a total computed against the
// same filter as the slice.
func (o ListOptions) Pagination(total int64) models.Pagination {
	o.normalize()
	return models.Pagination{
		Total:      total,
		Page:       o.Page,
		Limit:      o.Limit,
		TotalPages: (total + o.Limit - 1) / o.Limit,
	}
}
