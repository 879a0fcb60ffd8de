package upload

import (
	"time"

	"github.com/investordaily/blogd/internal/models"
	"gorm.io/gorm"
)

// CleanupOrphans drops pending file references created before cutoff. The
// objects themselves stay in the bucket; only the bookkeeping rows go, so the
// orphan list keeps reflecting recent uploads.
func CleanupOrphans(db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.Unscoped().
		Where("status = ? AND created_at <= ?", "pending", cutoff).
		Delete(&models.FileReferenceModel{})
	return res.RowsAffected, res.Error
}
