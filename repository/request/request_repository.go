package request

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
)

// ErrStaleStatus is returned when a compare-and-swap status update finds the row
// no longer in the expected status.
var ErrStaleStatus = errors.New("request status changed concurrently")

type RequestRepository interface {
	Create(ctx context.Context, req *model.ProductRequest) (*model.ProductRequest, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductRequest, error)
	List(ctx context.Context, filter *model.RequestFilter) ([]model.ProductRequest, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductRequest, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, from, to constant.RequestStatus) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewRequestRepository(conn *sqlx.DB) RequestRepository {
	return &SQL{conn: conn}
}

const (
	insertRequest = `INSERT INTO product_request (order_id, requester_id, target_id, product_type, quantity, reason, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectRequestBase = `SELECT r.id, r.order_id, r.requester_id, u.name AS requester_name, u.role AS requester_role,
r.target_id, r.product_type, r.quantity, r.reason, r.status, r.created_at, r.updated_at
FROM product_request r
JOIN user u ON u.id = r.requester_id
WHERE true`

	updateStatusCAS = `UPDATE product_request SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`
)

func (s *SQL) Create(ctx context.Context, req *model.ProductRequest) (*model.ProductRequest, error) {
	res, err := s.conn.ExecContext(ctx, insertRequest,
		req.OrderID, req.RequesterID, req.TargetID, req.ProductType, req.Quantity, req.Reason, req.Status, req.CreatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	req.ID = uint64(id)
	return req, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductRequest, error) {
	var r model.ProductRequest
	if err := s.conn.QueryRowxContext(ctx, selectRequestBase+" AND r.id = ?", id).StructScan(&r); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *SQL) List(ctx context.Context, filter *model.RequestFilter) ([]model.ProductRequest, error) {
	query := selectRequestBase
	args := make([]any, 0, 2)

	if filter != nil {
		if filter.RequesterID != 0 {
			query += " AND r.requester_id = ?"
			args = append(args, filter.RequesterID)
		}
		if filter.ParticipantID != 0 {
			query += " AND (r.requester_id = ? OR r.target_id = ?)"
			args = append(args, filter.ParticipantID, filter.ParticipantID)
		}
	}
	query += " ORDER BY r.created_at DESC, r.id DESC"

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]model.ProductRequest, 0)
	for rows.Next() {
		var r model.ProductRequest
		if err := rows.StructScan(&r); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// GetForUpdateTx locks the request row until the transaction ends.
func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductRequest, error) {
	var r model.ProductRequest
	if err := tx.QueryRowxContext(ctx, selectRequestBase+" AND r.id = ? FOR UPDATE", id).StructScan(&r); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, from, to constant.RequestStatus) error {
	res, err := tx.ExecContext(ctx, updateStatusCAS, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleStatus
	}
	return nil
}
