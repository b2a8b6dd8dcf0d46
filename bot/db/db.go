package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vincent-heng/goblin-clicker/config"
)

type DB struct {
	*gorm.DB
}

func New(conf config.Database) (*DB, error) {
	db, err := gorm.Open(postgres.Open(conf.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	for _, table := range []interface{}{
		&Player{}, &Kill{},
	} {
		if e := db.AutoMigrate(table); e != nil {
			return nil, fmt.Errorf("automigrate %+v failed: %w", table, e)
		}
	}
	return &DB{DB: db}, nil
}

func (db *DB) Begin() *DB {
	return &DB{
		DB: db.DB.Begin(),
	}
}

func (db *DB) ctx(ctx context.Context) *DB {
	return &DB{DB: db.DB.WithContext(ctx)}
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
