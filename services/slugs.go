package services

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// uniqueSlug derives a slug from name and suffixes -2, -3, ... until it is
// unique for the given table. excludeID skips the row being updated.
func uniqueSlug(db *gorm.DB, model interface{}, name, excludeID string) (string, error) {
	base := slug.Make(name)
	candidate := base
	suffix := 2
	for {
		query := db.Model(model).Where("slug = ?", candidate)
		if excludeID != "" {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
		suffix++
	}
}
