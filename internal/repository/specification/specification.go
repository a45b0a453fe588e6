package specification

import "gorm.io/gorm"

// Specification narrows a gorm query. Repositories accept them variadically.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ApplyAll applies specs in order.
func ApplyAll(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		if spec == nil {
			continue
		}
		db = spec.Apply(db)
	}
	return db
}
