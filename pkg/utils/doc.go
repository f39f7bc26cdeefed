// Package utils provides small helpers shared across sqlcheck packages.
//
// Ptr is mostly useful for the optional (pointer) fields of parse trees and
// query projections:
//
//	q.AddProjection(query.Projection{Table: utils.Ptr("u"), Column: "id"})
package utils
