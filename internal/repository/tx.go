package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner 封装数据库事务边界，便于 service 层在一个事务里组合多个 repo 操作
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
