// file: internals/features/school/grades/grade_structures/service/catalog.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	termSvc "schoolku_backend/internals/features/school/academics/academic_terms/service"
	subjectSvc "schoolku_backend/internals/features/school/academics/subjects/service"
	classSvc "schoolku_backend/internals/features/school/classes/classes/service"
	compSvc "schoolku_backend/internals/features/school/grades/grade_components/service"
	structModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/logger"
)

// Catalog: definisi struktur nilai per (mapel, kelas, semester, tahun ajaran).
type Catalog struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCatalog(db *gorm.DB, log *zap.Logger) *Catalog {
	return &Catalog{db: db, log: logger.OrNop(log).Named("grade_structures")}
}

type DefineInput struct {
	ClassID   uuid.UUID
	SubjectID uuid.UUID
	TermID    uuid.UUID
	Schema    structModel.GradeSchema
}

// Define memvalidasi referensi + schema lalu menyimpan struktur baru.
// Tahun ajaran diambil dari semester.
func (c *Catalog) Define(ctx context.Context, in DefineInput) (*structModel.GradeStructureModel, error) {
	ve := helper.NewValidationError()

	schema, err := in.Schema.Normalized()
	if err != nil {
		var sve *helper.ValidationError
		if !errors.As(err, &sve) {
			return nil, err
		}
		for f, msgs := range sve.Fields {
			for _, m := range msgs {
				ve.Add(f, m)
			}
		}
	}

	classOK, err := classSvc.IsActive(ctx, c.db, in.ClassID)
	if err != nil {
		return nil, err
	}
	if !classOK {
		ve.Add("class_id", "kelas tidak ditemukan atau tidak aktif")
	} else {
		offered, err := subjectSvc.IsActiveOffering(ctx, c.db, in.ClassID, in.SubjectID)
		if err != nil {
			return nil, err
		}
		if !offered {
			ve.Add("subject_id", "mapel tidak diajarkan di kelas ini")
		}
	}

	term, err := termSvc.GetTerm(ctx, c.db, in.TermID)
	if err != nil {
		return nil, err
	}
	if term == nil {
		ve.Add("term_id", "semester tidak ditemukan")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	row := &structModel.GradeStructureModel{
		GradeStructureSubjectID:      in.SubjectID,
		GradeStructureClassID:        in.ClassID,
		GradeStructureTermID:         in.TermID,
		GradeStructureAcademicYearID: term.AcademicTermAcademicYearID,
		GradeStructureSchema:         datatypes.NewJSONType(schema),
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&structModel.GradeStructureModel{}).
			Where("grade_structure_subject_id = ? AND grade_structure_class_id = ?", in.SubjectID, in.ClassID).
			Where("grade_structure_term_id = ? AND grade_structure_academic_year_id = ?", in.TermID, term.AcademicTermAcademicYearID).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "cek struktur nilai")
		}
		if n > 0 {
			return &helper.ConflictError{Message: "Struktur nilai untuk mapel, kelas, dan semester ini sudah ada"}
		}
		if err := tx.Create(row).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return &helper.ConflictError{Message: "Struktur nilai untuk mapel, kelas, dan semester ini sudah ada"}
			}
			return errors.Wrap(err, "simpan struktur nilai")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("📐 struktur nilai dibuat",
		zap.String("structure_id", row.GradeStructureID.String()),
		zap.Int("scopes", len(schema.Scopes)),
		zap.Int("formatives", schema.FormativeCount()),
	)
	return row, nil
}

// Get: NotFoundError kalau tidak ada.
func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*structModel.GradeStructureModel, error) {
	return get(ctx, c.db, id)
}

func get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*structModel.GradeStructureModel, error) {
	var m structModel.GradeStructureModel
	err := tx.WithContext(ctx).Where("grade_structure_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &helper.NotFoundError{Message: "Struktur nilai tidak ditemukan"}
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil struktur nilai")
	}
	return &m, nil
}

// Update mengganti schema. Ditolak (409) selama ada komponen nilai yang merujuk,
// apa pun isi schema baru; validasi schema baru dijalankan setelahnya.
func (c *Catalog) Update(ctx context.Context, id uuid.UUID, schema structModel.GradeSchema) (*structModel.GradeStructureModel, error) {
	var out *structModel.GradeStructureModel
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := ensureUnreferenced(ctx, tx, id, "diubah"); err != nil {
			return err
		}
		norm, err := schema.Normalized()
		if err != nil {
			return err
		}
		m.GradeStructureSchema = datatypes.NewJSONType(norm)
		if err := tx.Model(m).Update("grade_structure_schema", m.GradeStructureSchema).Error; err != nil {
			return errors.Wrap(err, "update struktur nilai")
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("📐 struktur nilai diubah",
		zap.String("structure_id", id.String()),
		zap.Int("scopes", len(out.Schema().Scopes)),
		zap.Int("formatives", out.Schema().FormativeCount()),
	)
	return out, nil
}

// Delete menghapus struktur. Ditolak (409) selama ada komponen nilai yang merujuk.
func (c *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := ensureUnreferenced(ctx, tx, id, "dihapus"); err != nil {
			return err
		}
		return errors.Wrap(tx.Delete(m).Error, "hapus struktur nilai")
	})
}

func ensureUnreferenced(ctx context.Context, tx *gorm.DB, id uuid.UUID, verb string) error {
	n, err := compSvc.CountByStructure(ctx, tx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &helper.ConflictError{
			Message:  "Struktur nilai tidak bisa " + verb + " karena sudah ada komponen nilai",
			Blocking: n,
		}
	}
	return nil
}

type ListFilter struct {
	ClassID   *uuid.UUID
	SubjectID *uuid.UUID
	TermID    *uuid.UUID
	Offset    int
	Limit     int
}

func (c *Catalog) List(ctx context.Context, f ListFilter) ([]structModel.GradeStructureModel, int64, error) {
	q := c.db.WithContext(ctx).Model(&structModel.GradeStructureModel{})
	if f.ClassID != nil {
		q = q.Where("grade_structure_class_id = ?", *f.ClassID)
	}
	if f.SubjectID != nil {
		q = q.Where("grade_structure_subject_id = ?", *f.SubjectID)
	}
	if f.TermID != nil {
		q = q.Where("grade_structure_term_id = ?", *f.TermID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "hitung struktur nilai")
	}
	var rows []structModel.GradeStructureModel
	if err := q.Order("grade_structure_created_at DESC, grade_structure_id ASC").
		Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list struktur nilai")
	}
	return rows, total, nil
}
