// file: internals/features/school/classes/classes/service/class_directory.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	classModel "schoolku_backend/internals/features/school/classes/classes/model"
)

// Directory: lookup kelas (rombel) yang masih active.
// Dipakai kenaikan kelas & guard penilaian; tidak ada CRUD di sini.
type Directory struct {
	cache map[uuid.UUID]*classModel.ClassModel
	byLvl map[int][]classModel.ClassModel
}

func NewDirectory() *Directory {
	return &Directory{
		cache: map[uuid.UUID]*classModel.ClassModel{},
		byLvl: map[int][]classModel.ClassModel{},
	}
}

// FindActive: nil, nil kalau kelas tidak ada atau sudah tombstoned.
func (d *Directory) FindActive(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*classModel.ClassModel, error) {
	if m, ok := d.cache[id]; ok {
		return m, nil
	}
	var m classModel.ClassModel
	err := tx.WithContext(ctx).
		Where("class_id = ? AND class_status = ?", id, constants.StatusActive).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d.cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil kelas")
	}
	d.cache[id] = &m
	return &m, nil
}

// FindNextLevel mencari kelas active di level+1.
// Prioritas section yang sama (case-insensitive), lalu section terkecil, lalu id.
func (d *Directory) FindNextLevel(ctx context.Context, tx *gorm.DB, from *classModel.ClassModel) (*classModel.ClassModel, error) {
	next := from.ClassLevel + 1
	rows, ok := d.byLvl[next]
	if !ok {
		if err := tx.WithContext(ctx).
			Where("class_level = ? AND class_status = ?", next, constants.StatusActive).
			Order("class_section ASC, class_id ASC").
			Find(&rows).Error; err != nil {
			return nil, errors.Wrap(err, "ambil kelas level berikutnya")
		}
		d.byLvl[next] = rows
	}
	if len(rows) == 0 {
		return nil, nil
	}
	for i := range rows {
		if strings.EqualFold(rows[i].ClassSection, from.ClassSection) {
			return &rows[i], nil
		}
	}
	return &rows[0], nil
}

// IsActive: cek cepat tanpa cache (dipakai di luar engine).
func IsActive(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&classModel.ClassModel{}).
		Where("class_id = ? AND class_status = ?", id, constants.StatusActive).
		Count(&n).Error
	return n > 0, errors.Wrap(err, "cek kelas")
}

// ActiveIDs memfilter daftar id menjadi yang masih active.
func ActiveIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := tx.WithContext(ctx).Model(&classModel.ClassModel{}).
		Where("class_id IN ? AND class_status = ?", ids, constants.StatusActive).
		Pluck("class_id", &found).Error; err != nil {
		return nil, errors.Wrap(err, "filter kelas active")
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

type ListFilter struct {
	Level  *int
	Status string // kosong = active
	Q      string
	Offset int
	Limit  int
}

// List: daftar kelas untuk admin (memilih kelas sebelum kenaikan / penugasan wali).
func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]classModel.ClassModel, int64, error) {
	status := strings.TrimSpace(f.Status)
	if status == "" {
		status = string(constants.StatusActive)
	}
	q := db.WithContext(ctx).Model(&classModel.ClassModel{}).Where("class_status = ?", status)
	if f.Level != nil {
		q = q.Where("class_level = ?", *f.Level)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		q = q.Where("LOWER(class_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "hitung kelas")
	}
	var rows []classModel.ClassModel
	if err := q.Order("class_level ASC, class_section ASC, class_id ASC").
		Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list kelas")
	}
	return rows, total, nil
}
