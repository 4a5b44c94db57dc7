package helper

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// --- PG error mapping (pgx/libpq/gorm) ---
// ok=false berarti error bukan pelanggaran constraint yang dikenal.
func MapPGError(err error) (int, string, bool) {
	if err == nil {
		return 0, "", false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict, "Data duplikat (unique violation).", true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation).", true
	}

	// pgx
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return mapPGCode(pgxErr.Code)
	}
	// lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return mapPGCode(string(pqErr.Code))
	}
	return 0, "", false
}

func mapPGCode(code string) (int, string, bool) {
	switch code {
	case "23505":
		return http.StatusConflict, "Data duplikat (unique violation).", true
	case "23503":
		return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation).", true
	case "40001", "40P01":
		return http.StatusConflict, "Transaksi bentrok dengan proses lain, silakan ulangi.", true
	default:
		return 0, "", false
	}
}

// IsUniqueViolation dipakai service untuk membedakan duplikat vs error lain.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
