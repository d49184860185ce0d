package crud

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/goliatone/go-crudform/pkg/orm"
)

// Row is a record read back from the database keyed by column name.
type Row = map[string]any

// Store persists and reads records for a mapped entity. Rows travel as
// column keyed maps so callers stay metadata driven.
type Store interface {
	List(entity *orm.Entity, filter map[string]any) ([]Row, error)
	Get(entity *orm.Entity, key any) (Row, error)
	Create(entity *orm.Entity, values map[string]any) error
	Update(entity *orm.Entity, key any, values map[string]any) error
	Delete(entity *orm.Entity, key any) error
}

// GormStore is the gorm backed Store.
type GormStore struct {
	db         *gorm.DB
	retryCount int
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, retryCount: defaultTxRetry}
}

func (s *GormStore) List(entity *orm.Entity, filter map[string]any) ([]Row, error) {
	var rows []Row

	q := s.db.Table(entity.Table)
	if len(filter) != 0 {
		q = q.Where(filter)
	}
	if order := entity.OrderBy; order != "" {
		q = q.Order(order)
	}

	if err := q.Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "crud: list %s", entity.Table)
	}

	return rows, nil
}

func (s *GormStore) Get(entity *orm.Entity, key any) (Row, error) {
	row := Row{}

	err := s.db.Table(entity.Table).
		Where(entity.PrimaryKey.DBName+" = ?", key).
		Take(&row).Error
	if err != nil {
		return nil, errors.Wrapf(err, "crud: get %s %v", entity.Table, key)
	}

	return row, nil
}

func (s *GormStore) Create(entity *orm.Entity, values map[string]any) error {
	err := WithTxRetry(s.db, s.retryCount, func(tx *gorm.DB) error {
		return tx.Table(entity.Table).Create(values).Error
	})
	if err != nil {
		return errors.Wrapf(err, "crud: create %s", entity.Table)
	}

	return nil
}

func (s *GormStore) Update(entity *orm.Entity, key any, values map[string]any) error {
	err := WithTxRetry(s.db, s.retryCount, func(tx *gorm.DB) error {
		res := tx.Table(entity.Table).
			Where(entity.PrimaryKey.DBName+" = ?", key).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "crud: update %s %v", entity.Table, key)
	}

	return nil
}

func (s *GormStore) Delete(entity *orm.Entity, key any) error {
	err := WithTxRetry(s.db, s.retryCount, func(tx *gorm.DB) error {
		res := tx.Table(entity.Table).
			Where(entity.PrimaryKey.DBName+" = ?", key).
			Delete(nil)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "crud: delete %s %v", entity.Table, key)
	}

	return nil
}
