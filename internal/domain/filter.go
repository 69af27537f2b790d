// internal/domain/filter.go
package domain

// SparkOwnership narrows a spark listing to the viewer's own campaigns or to
// campaigns the viewer has donated to. The zero value applies no ownership
// filter.
type SparkOwnership string

const (
	SparkOwnershipAny       SparkOwnership = ""
	SparkOwnershipMine      SparkOwnership = "MINE"
	SparkOwnershipDonatedTo SparkOwnership = "DONATED_TO"
)

// SparkFilter selects sparks for listing. Nil pointer fields and the zero
// ownership value mean "no filter"; an entirely zero filter lists all active
// sparks, newest first.
type SparkFilter struct {
	Status    *SparkStatus
	Category  *SparkCategory
	Ownership SparkOwnership
}

// IsZero reports whether no filtering criteria are set.
func (f SparkFilter) IsZero() bool {
	return f.Status == nil && f.Category == nil && f.Ownership == SparkOwnershipAny
}
