package product

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/telecom-distribution/model"
)

// ErrDuplicateCode is returned by Create when the code is already taken.
var ErrDuplicateCode = errors.New("product code already exists")

const mysqlDuplicateEntry = 1062

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	insertProduct = `INSERT INTO product (type, code, serial_number, price, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	listProducts  = `SELECT id, type, code, serial_number, price, created_by, created_at FROM product ORDER BY created_at DESC, id DESC`
	countProducts = `SELECT COUNT(*) FROM product`
	existsByCode  = `SELECT EXISTS(SELECT 1 FROM product WHERE code = ?)`
)

func (s *SQL) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	res, err := s.conn.ExecContext(ctx, insertProduct, p.Type, p.Code, p.SerialNumber, p.Price, p.CreatedBy, p.CreatedAt)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = uint64(id)
	return p, nil
}

func (s *SQL) List(ctx context.Context) ([]model.Product, error) {
	rows, err := s.conn.QueryxContext(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		var it model.Product
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQL) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.conn.GetContext(ctx, &total, countProducts); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *SQL) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := s.conn.GetContext(ctx, &exists, existsByCode, code); err != nil {
		return false, err
	}
	return exists, nil
}
