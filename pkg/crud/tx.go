package crud

import (
	"gorm.io/gorm"
)

const defaultTxRetry = 3

// WithTxRetry runs fn inside a transaction, retrying on failure. Busy
// sqlite handles and serialization failures usually clear on a retry.
func WithTxRetry(db *gorm.DB, retryCount int, fn func(tx *gorm.DB) error) error {
	var err error

	if retryCount < 1 {
		retryCount = defaultTxRetry
	}

	for i := 0; i < retryCount; i++ {
		err = db.Transaction(fn)
		if err == nil {
			break
		}
	}

	return err
}
