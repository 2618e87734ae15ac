package databases

import "go.mongodb.org/mongo-driver/bson"

// ApplySoftDeleteFilter adds the default `isDeleted != true` condition to a
// read filter. If the caller already filters on isDeleted (any value,
// including true) the caller's filter governs and no condition is added.
//
// The policy is applied once, inside the database wrappers of the entity
// types that soft-delete (departments, patients, research, pharmacists), so
// individual queries cannot accidentally leak deleted records. Doctors
// (hard delete) and nurses (deactivation) are exempt.
func ApplySoftDeleteFilter(filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	if _, ok := filter["isDeleted"]; ok {
		return filter
	}
	out := bson.M{"isDeleted": bson.M{"$ne": true}}
	for k, v := range filter {
		out[k] = v
	}
	return out
}
