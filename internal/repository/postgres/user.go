package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/domain"
)

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const userColumns = "id, email, name, facebook_id, google_id, avatar, verified, created_at, updated_at"

func (ur *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByID"

	return ur.getOne(ctx, op, sq.Eq{"id": id})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByEmail"

	return ur.getOne(ctx, op, sq.Eq{"email": email})
}

func (ur *UserRepository) GetByFacebookID(ctx context.Context, facebookID string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByFacebookID"

	return ur.getOne(ctx, op, sq.Eq{"facebook_id": facebookID})
}

func (ur *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByGoogleID"

	return ur.getOne(ctx, op, sq.Eq{"google_id": googleID})
}

func (ur *UserRepository) getOne(ctx context.Context, op string, pred sq.Eq) (*domain.User, error) {
	query, args, err := ur.sq.Select(userColumns).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := ur.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user", op, apperrors.ErrNotFound)
		}

		return nil, &apperrors.StorageError{Op: op, Err: err}
	}

	return &user, nil
}

func (ur *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const op = "internal.repository.postgres.CreateUser"

	query, args, err := ur.sq.Insert("users").
		Columns("id", "email", "name", "facebook_id", "google_id", "avatar", "verified").
		Values(user.ID, user.Email, user.Name, user.FacebookID, user.GoogleID, user.Avatar, user.Verified).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := ur.db.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &apperrors.UserAlreadyExistsError{Email: user.Email}
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	ur.log.Info("user created", slog.String("op", op), slog.String("user_id", user.ID))

	return nil
}

func (ur *UserRepository) Update(ctx context.Context, user *domain.User) error {
	const op = "internal.repository.postgres.UpdateUser"

	query, args, err := ur.sq.Update("users").
		Set("email", user.Email).
		Set("name", user.Name).
		Set("facebook_id", user.FacebookID).
		Set("google_id", user.GoogleID).
		Set("avatar", user.Avatar).
		Set("verified", user.Verified).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := ur.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &apperrors.UserAlreadyExistsError{Email: user.Email}
		}

		return &apperrors.StorageError{Op: op, Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, user.ID)
	}

	return nil
}
