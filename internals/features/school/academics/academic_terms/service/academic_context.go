// file: internals/features/school/academics/academic_terms/service/academic_context.go
package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	termModel "schoolku_backend/internals/features/school/academics/academic_terms/model"
	helper "schoolku_backend/internals/helpers"
)

// AcademicContext: tahun ajaran + semester yang dipakai sebuah operasi.
// Diteruskan eksplisit ke engine; hanya layer HTTP/CLI yang membaca flag is_active.
type AcademicContext struct {
	YearID    uuid.UUID `json:"academic_year_id"`
	YearLabel string    `json:"academic_year_label"`
	TermID    uuid.UUID `json:"academic_term_id"`
	TermName  string    `json:"academic_term_name"`
}

func (a AcademicContext) IsZero() bool { return a.YearID == uuid.Nil }

/* =========================================================
   Resolve (layer pemanggil)
========================================================= */

// ResolveActiveContext membaca tahun & semester aktif.
// Tidak ada tahun aktif → PreconditionError.
func ResolveActiveContext(ctx context.Context, db *gorm.DB) (AcademicContext, error) {
	var year termModel.AcademicYearModel
	err := db.WithContext(ctx).
		Where("academic_year_is_active = ?", true).
		Order("academic_year_updated_at DESC").
		Take(&year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AcademicContext{}, &helper.PreconditionError{Message: "Belum ada tahun ajaran aktif"}
	}
	if err != nil {
		return AcademicContext{}, errors.Wrap(err, "ambil tahun ajaran aktif")
	}

	out := AcademicContext{YearID: year.AcademicYearID, YearLabel: year.AcademicYearLabel}

	var term termModel.AcademicTermModel
	err = db.WithContext(ctx).
		Where("academic_term_academic_year_id = ? AND academic_term_is_active = ?", year.AcademicYearID, true).
		Take(&term).Error
	switch {
	case err == nil:
		out.TermID = term.AcademicTermID
		out.TermName = term.AcademicTermName
	case errors.Is(err, gorm.ErrRecordNotFound):
		// tahun aktif tanpa semester aktif: term kosong, pemanggil yang butuh term harus cek sendiri
	default:
		return AcademicContext{}, errors.Wrap(err, "ambil semester aktif")
	}
	return out, nil
}

// ContextForYear membangun context dari id tahun tertentu (mis. from_academic_year_id).
func ContextForYear(ctx context.Context, db *gorm.DB, yearID uuid.UUID) (AcademicContext, error) {
	year, err := GetYear(ctx, db, yearID)
	if err != nil {
		return AcademicContext{}, err
	}
	if year == nil {
		return AcademicContext{}, helper.NewValidationError().Add("from_academic_year_id", "tahun ajaran tidak ditemukan")
	}
	return AcademicContext{YearID: year.AcademicYearID, YearLabel: year.AcademicYearLabel}, nil
}

/* =========================================================
   Lookup
========================================================= */

// GetYear: nil, nil kalau tidak ada.
func GetYear(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*termModel.AcademicYearModel, error) {
	var m termModel.AcademicYearModel
	err := tx.WithContext(ctx).Where("academic_year_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil tahun ajaran")
	}
	return &m, nil
}

func FindYearByLabel(ctx context.Context, tx *gorm.DB, label string) (*termModel.AcademicYearModel, error) {
	var m termModel.AcademicYearModel
	err := tx.WithContext(ctx).Where("academic_year_label = ?", strings.TrimSpace(label)).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "cari tahun ajaran by label")
	}
	return &m, nil
}

// GetTerm: nil, nil kalau tidak ada.
func GetTerm(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*termModel.AcademicTermModel, error) {
	var m termModel.AcademicTermModel
	err := tx.WithContext(ctx).Where("academic_term_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil semester")
	}
	return &m, nil
}

func ListYears(ctx context.Context, db *gorm.DB, offset, limit int) ([]termModel.AcademicYearModel, int64, error) {
	var (
		rows  []termModel.AcademicYearModel
		total int64
	)
	q := db.WithContext(ctx).Model(&termModel.AcademicYearModel{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "hitung tahun ajaran")
	}
	if err := q.Order("academic_year_label DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list tahun ajaran")
	}
	return rows, total, nil
}

func ListTerms(ctx context.Context, tx *gorm.DB, yearID uuid.UUID) ([]termModel.AcademicTermModel, error) {
	var rows []termModel.AcademicTermModel
	err := tx.WithContext(ctx).
		Where("academic_term_academic_year_id = ?", yearID).
		Order("academic_term_name ASC").
		Find(&rows).Error
	return rows, errors.Wrap(err, "list semester")
}

/* =========================================================
   Write (dipakai kenaikan kelas, selalu di dalam tx)
========================================================= */

// CreateYearWithTerms membuat tahun ajaran (non-aktif) + dua semester.
func CreateYearWithTerms(ctx context.Context, tx *gorm.DB, label string) (*termModel.AcademicYearModel, error) {
	year := termModel.AcademicYearModel{AcademicYearLabel: strings.TrimSpace(label)}
	if err := tx.WithContext(ctx).Create(&year).Error; err != nil {
		return nil, errors.Wrap(err, "buat tahun ajaran")
	}
	for _, name := range termModel.TermNames {
		t := termModel.AcademicTermModel{
			AcademicTermAcademicYearID: year.AcademicYearID,
			AcademicTermName:           name,
		}
		if err := tx.WithContext(ctx).Create(&t).Error; err != nil {
			return nil, errors.Wrapf(err, "buat semester %s", name)
		}
	}
	return &year, nil
}

// ActivateYear: matikan semua tahun/semester lain, aktifkan tahun target + semester ganjil.
func ActivateYear(ctx context.Context, tx *gorm.DB, yearID uuid.UUID) error {
	db := tx.WithContext(ctx)

	if err := db.Model(&termModel.AcademicYearModel{}).
		Where("academic_year_id <> ? AND academic_year_is_active = ?", yearID, true).
		Update("academic_year_is_active", false).Error; err != nil {
		return errors.Wrap(err, "nonaktifkan tahun ajaran lama")
	}
	if err := db.Model(&termModel.AcademicTermModel{}).
		Where("academic_term_academic_year_id <> ? AND academic_term_is_active = ?", yearID, true).
		Update("academic_term_is_active", false).Error; err != nil {
		return errors.Wrap(err, "nonaktifkan semester lama")
	}
	if err := db.Model(&termModel.AcademicYearModel{}).
		Where("academic_year_id = ?", yearID).
		Update("academic_year_is_active", true).Error; err != nil {
		return errors.Wrap(err, "aktifkan tahun ajaran")
	}
	if err := db.Model(&termModel.AcademicTermModel{}).
		Where("academic_term_academic_year_id = ?", yearID).
		Update("academic_term_is_active", gorm.Expr("academic_term_name = ?", termModel.TermGanjil)).Error; err != nil {
		return errors.Wrap(err, "aktifkan semester ganjil")
	}
	return nil
}

/* =========================================================
   Label
========================================================= */

var yearLabelRe = regexp.MustCompile(`^\s*(\d{4})\s*/\s*(\d{4})\s*$`)

// NextYearLabel: "2025/2026" → "2026/2027". Label kosong/tidak dikenali → tahun kalender now.
func NextYearLabel(prev string, now time.Time) string {
	if m := yearLabelRe.FindStringSubmatch(prev); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%d/%d", a+1, b+1)
	}
	y := now.Year()
	return fmt.Sprintf("%d/%d", y, y+1)
}
