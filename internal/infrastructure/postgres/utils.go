package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation проверяет, является ли ошибка нарушением уникального constraint-а (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullIfEmpty превращает пустую строку в NULL для вставки.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
