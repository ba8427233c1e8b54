package stock

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
)

type StockRepository interface {
	List(ctx context.Context, ownerID *uint64) ([]model.StockRecord, error)
	ApplyMovementTx(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error
	ResetAllTx(ctx context.Context, tx *sqlx.Tx, actorID uint64) (int64, error)
	ListTransactions(ctx context.Context, ownerID *uint64) ([]model.StockTransaction, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewStockRepository(conn *sqlx.DB) StockRepository {
	return &SQL{conn: conn}
}

const (
	listStockBase = `SELECT s.owner_id, u.name AS owner_name, s.product_type, s.quantity, s.updated_at
FROM stock s
JOIN user u ON u.id = s.owner_id
WHERE true`

	debitStock = `UPDATE stock SET quantity = quantity - ?, updated_at = NOW()
WHERE owner_id = ? AND product_type = ? AND quantity >= ?`

	creditStock = `INSERT INTO stock (owner_id, product_type, quantity, updated_at) VALUES (?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity), updated_at = NOW()`

	insertTransaction = `INSERT INTO stock_transaction (request_id, from_owner_id, to_owner_id, product_type, quantity, kind, created_by, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	lockNonZeroStock = `SELECT owner_id, product_type, quantity FROM stock WHERE quantity > 0 FOR UPDATE`

	zeroAllStock = `UPDATE stock SET quantity = 0, updated_at = NOW() WHERE quantity <> 0`

	listTransactionsBase = `SELECT id, request_id, from_owner_id, to_owner_id, product_type, quantity, kind, created_by, created_at
FROM stock_transaction WHERE true`
)

func (r *SQL) List(ctx context.Context, ownerID *uint64) ([]model.StockRecord, error) {
	query := listStockBase
	args := make([]any, 0, 1)
	if ownerID != nil {
		query += " AND s.owner_id = ?"
		args = append(args, *ownerID)
	}
	query += " ORDER BY s.owner_id, FIELD(s.product_type, 'SIM', 'Mobile', 'Fiber')"

	res := make([]model.StockRecord, 0)
	if err := r.conn.SelectContext(ctx, &res, query, args...); err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyMovementTx debits the source (refusing to go below zero), credits the
// destination and records the movement. Either side may be outside the ledger.
func (r *SQL) ApplyMovementTx(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error {
	if m.FromOwnerID != nil {
		res, err := tx.ExecContext(ctx, debitStock, m.Quantity, *m.FromOwnerID, m.ProductType, m.Quantity)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.SetCustomError(constant.ErrInsufficientStock)
		}
	}

	if m.ToOwnerID != nil {
		if _, err := tx.ExecContext(ctx, creditStock, *m.ToOwnerID, m.ProductType, m.Quantity); err != nil {
			return err
		}
	}

	var requestID *uint64
	if m.RequestID != 0 {
		requestID = &m.RequestID
	}
	_, err := tx.ExecContext(ctx, insertTransaction,
		requestID, m.FromOwnerID, m.ToOwnerID, m.ProductType, m.Quantity, constant.StockTransactionTransfer, m.CreatedBy, time.Now().UTC())
	return err
}

// ResetAllTx zeroes every record, logging a reset row for each non-zero one.
func (r *SQL) ResetAllTx(ctx context.Context, tx *sqlx.Tx, actorID uint64) (int64, error) {
	rows, err := tx.QueryxContext(ctx, lockNonZeroStock)
	if err != nil {
		return 0, err
	}

	locked := make([]model.StockRecord, 0)
	for rows.Next() {
		var rec model.StockRecord
		if err := rows.StructScan(&rec); err != nil {
			rows.Close()
			return 0, err
		}
		locked = append(locked, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	for _, rec := range locked {
		owner := rec.OwnerID
		if _, err := tx.ExecContext(ctx, insertTransaction,
			nil, &owner, nil, rec.ProductType, rec.Quantity, constant.StockTransactionReset, actorID, now); err != nil {
			return 0, err
		}
	}

	res, err := tx.ExecContext(ctx, zeroAllStock)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQL) ListTransactions(ctx context.Context, ownerID *uint64) ([]model.StockTransaction, error) {
	query := listTransactionsBase
	args := make([]any, 0, 2)
	if ownerID != nil {
		query += " AND (from_owner_id = ? OR to_owner_id = ?)"
		args = append(args, *ownerID, *ownerID)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT 200"

	res := make([]model.StockTransaction, 0)
	if err := r.conn.SelectContext(ctx, &res, query, args...); err != nil {
		return nil, err
	}
	return res, nil
}
