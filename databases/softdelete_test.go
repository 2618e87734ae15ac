package databases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/carelinkhq/hospital-api/databases"
)

func TestApplySoftDeleteFilter_Default(t *testing.T) {
	got := databases.ApplySoftDeleteFilter(bson.M{"name": "Cardiology"})

	assert.Equal(t, bson.M{
		"name":      "Cardiology",
		"isDeleted": bson.M{"$ne": true},
	}, got)
}

func TestApplySoftDeleteFilter_NilFilter(t *testing.T) {
	got := databases.ApplySoftDeleteFilter(nil)

	assert.Equal(t, bson.M{"isDeleted": bson.M{"$ne": true}}, got)
}

func TestApplySoftDeleteFilter_CallerOverrideWins(t *testing.T) {
	// an explicit isDeleted key disables the default exclusion entirely
	got := databases.ApplySoftDeleteFilter(bson.M{"isDeleted": true})
	assert.Equal(t, bson.M{"isDeleted": true}, got)

	got = databases.ApplySoftDeleteFilter(bson.M{"isDeleted": false, "name": "x"})
	assert.Equal(t, bson.M{"isDeleted": false, "name": "x"}, got)
}
