package user

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	List(ctx context.Context, filter *model.UserListFilter) ([]model.UserEntity, error)
	CountByRole(ctx context.Context, role constant.Role) (int64, error)
	FirstByRole(ctx context.Context, role constant.Role) (*model.UserEntity, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO user (name, email, phone, password_hash, role, parent_id, created_at) VALUES (?, ?, ?, ?, ?, ?, NOW())`
	userColumns     = `id, name, email, phone, password_hash, role, parent_id, created_at, updated_at`
	getUserBase     = `SELECT ` + userColumns + ` FROM user WHERE true`
	countByRole     = `SELECT COUNT(*) FROM user WHERE role = ?`
	firstByRole     = `SELECT ` + userColumns + ` FROM user WHERE role = ? ORDER BY id LIMIT 1`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertUserQuery, data.Name, data.Email, data.Phone, data.PasswordHash, data.Role, data.ParentID)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 3)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.UserListFilter) ([]model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.Role != "" {
		query += " AND role = ?"
		args = append(args, filter.Role)
	}
	if filter.ParentID != nil {
		query += " AND parent_id = ?"
		args = append(args, *filter.ParentID)
	}
	query += " ORDER BY name, id"

	users := make([]model.UserEntity, 0)
	if err := s.conn.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQL) CountByRole(ctx context.Context, role constant.Role) (int64, error) {
	var total int64
	if err := s.conn.GetContext(ctx, &total, countByRole, role); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *SQL) FirstByRole(ctx context.Context, role constant.Role) (*model.UserEntity, error) {
	var entity model.UserEntity
	if err := s.conn.GetContext(ctx, &entity, firstByRole, role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}
