package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Taller-api/internal/domain"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repositorios no distinguen uno de otro.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

const openSessionConstraint = "cash_sessions_one_open_per_operator"

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// mapError traduce errores del driver a errores de dominio conservando el contexto de la operación.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if pgErr.ConstraintName == openSessionConstraint {
				return domain.ErrAlreadyOpen
			}
			return fmt.Errorf("%s: %w (%s)", op, domain.ErrConflict, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w (%s)", op, domain.ErrNotFound, pgErr.ConstraintName)
		case codeCheckViolation:
			if pgErr.ConstraintName == "products_stock_non_negative" {
				return fmt.Errorf("%s: %w", op, domain.ErrInsufficientStock)
			}
			return fmt.Errorf("%s: %w (%s)", op, domain.ErrInvalidInput, pgErr.ConstraintName)
		case codeInvalidText:
			// ids que no son UUID válidos llegan desde la ruta tal cual
			return fmt.Errorf("%s: %w: identificador con formato inválido", op, domain.ErrInvalidInput)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
