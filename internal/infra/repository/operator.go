package repository

import (
	"context"
	"time"

	"reimburse-api/internal/domain/operator"
	"reimburse-api/internal/infra"
	"reimburse-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const operatorColumns = `id, email, name, password_hash, is_superuser,
	is_active, last_login, created_at`

type OperatorRepository struct {
	db DBTX
}

func NewOperatorRepository(db DBTX) *OperatorRepository {
	return &OperatorRepository{db: db}
}

func (r *OperatorRepository) FindByEmail(ctx context.Context, email string) (*operator.Operator, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+operatorColumns+` FROM operators WHERE email = $1`, email)
	op, err := scanOperator(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find operator by email", err)
	}
	return op, nil
}

func (r *OperatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*operator.Operator, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+operatorColumns+` FROM operators WHERE id = $1`, id)
	op, err := scanOperator(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find operator by id", err)
	}
	return op, nil
}

func (r *OperatorRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE operators SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func scanOperator(row rowScanner) (*operator.Operator, error) {
	var (
		op           operator.Operator
		passwordHash pgtype.Text
		lastLogin    pgtype.Timestamptz
	)
	err := row.Scan(&op.ID, &op.Email, &op.Name, &passwordHash,
		&op.IsSuperuser, &op.IsActive, &lastLogin, &op.CreatedAt)
	if err != nil {
		return nil, err
	}
	op.PasswordHash = pgconv.StringPtrFromPgtype(passwordHash)
	op.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &op, nil
}
