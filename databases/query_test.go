package databases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinkhq/hospital-api/databases"
)

func TestListOptions_FilterDefaultsEmpty(t *testing.T) {
	lo := databases.ListOptions{}
	assert.Equal(t, bson.M{}, lo.Filter())
}

func TestListOptions_FilterNameAndStatus(t *testing.T) {
	lo := databases.ListOptions{Name: "car", Status: "Admitted"}

	assert.Equal(t, bson.M{
		"name":   bson.M{"$regex": "car", "$options": "i"},
		"status": "Admitted",
	}, lo.Filter())
}

func TestListOptions_FilterCustomKeys(t *testing.T) {
	deptID := primitive.NewObjectID()
	lo := databases.ListOptions{
		Name:          "cardio",
		DepartmentID:  deptID.Hex(),
		NameKey:       "title",
		DepartmentKey: "department_id",
	}

	assert.Equal(t, bson.M{
		"title":         bson.M{"$regex": "cardio", "$options": "i"},
		"department_id": deptID,
	}, lo.Filter())
}

func TestListOptions_FilterMalformedIDIgnored(t *testing.T) {
	lo := databases.ListOptions{DoctorID: "not-a-hex-id"}
	assert.Equal(t, bson.M{}, lo.Filter())
}

func TestListOptions_FilterIncludeDeleted(t *testing.T) {
	deleted := true
	lo := databases.ListOptions{IncludeDeleted: &deleted}
	assert.Equal(t, bson.M{"isDeleted": true}, lo.Filter())
}

func TestListOptions_FindOptionsDefaults(t *testing.T) {
	lo := databases.ListOptions{}
	opts := lo.FindOptions()

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
	assert.Equal(t, int64(0), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
}

func TestListOptions_FindOptionsPaging(t *testing.T) {
	lo := databases.ListOptions{Page: 3, Limit: 25, SortBy: "name", SortOrder: "asc"}
	opts := lo.FindOptions()

	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, opts.Sort)
	assert.Equal(t, int64(50), *opts.Skip)
	assert.Equal(t, int64(25), *opts.Limit)
}

func TestListOptions_Pagination(t *testing.T) {
	lo := databases.ListOptions{Page: 2, Limit: 10}
	p := lo.Pagination(25)

	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, int64(2), p.Page)
	assert.Equal(t, int64(10), p.Limit)
	assert.Equal(t, int64(3), p.TotalPages)
}

func TestListOptions_PaginationEmpty(t *testing.T) {
	lo := databases.ListOptions{}
	p := lo.Pagination(0)

	assert.Equal(t, int64(0), p.Total)
	assert.Equal(t, int64(0), p.TotalPages)
}
