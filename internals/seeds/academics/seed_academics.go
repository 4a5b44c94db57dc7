package academics

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	studentModel "schoolku_backend/internals/features/lembaga/teachers_students/model"
	termSvc "schoolku_backend/internals/features/school/academics/academic_terms/service"
	subjectModel "schoolku_backend/internals/features/school/academics/subjects/model"
	classModel "schoolku_backend/internals/features/school/classes/classes/model"
	"schoolku_backend/internals/helpers/logger"
)

// Struktur file seed (YAML).
type SchoolSeed struct {
	AcademicYear string        `yaml:"academic_year"`
	Classes      []ClassSeed   `yaml:"classes"`
	Subjects     []SubjectSeed `yaml:"subjects"`
	Students     []StudentSeed `yaml:"students"`
}

type ClassSeed struct {
	Level   int    `yaml:"level"`
	Section string `yaml:"section"`
	Name    string `yaml:"name"`
}

type SubjectSeed struct {
	Code      string   `yaml:"code"`
	Name      string   `yaml:"name"`
	ClassKeys []string `yaml:"classes"` // "1A", "2B", ...
}

type StudentSeed struct {
	Name  string `yaml:"name"`
	NIS   string `yaml:"nis"`
	Class string `yaml:"class"` // kosong = belum punya kelas
}

type Stats struct {
	Classes   int
	Subjects  int
	Offerings int
	Students  int
}

func classKey(level int, section string) string {
	return strconv.Itoa(level) + strings.ToUpper(strings.TrimSpace(section))
}

// SeedFromYAMLFile membaca file lalu memanggil Seed.
func SeedFromYAMLFile(ctx context.Context, db *gorm.DB, path string, log *zap.Logger) (Stats, error) {
	log = logger.OrNop(log)
	log.Info("📥 Membaca file seed", zap.String("path", path))

	b, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, errors.Wrap(err, "baca file seed")
	}
	var s SchoolSeed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Stats{}, errors.Wrap(err, "decode YAML seed")
	}
	return Seed(ctx, db, s, log)
}

// Seed idempotent: baris yang sudah ada (berdasarkan label / level+section / kode / NIS) dilewati.
func Seed(ctx context.Context, db *gorm.DB, s SchoolSeed, log *zap.Logger) (Stats, error) {
	log = logger.OrNop(log)
	var st Stats

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		/* ===== Tahun ajaran ===== */
		if label := strings.TrimSpace(s.AcademicYear); label != "" {
			year, err := termSvc.FindYearByLabel(ctx, tx, label)
			if err != nil {
				return err
			}
			if year == nil {
				if year, err = termSvc.CreateYearWithTerms(ctx, tx, label); err != nil {
					return err
				}
				if err := termSvc.ActivateYear(ctx, tx, year.AcademicYearID); err != nil {
					return err
				}
				log.Info("✅ tahun ajaran dibuat", zap.String("label", label))
			}
		}

		/* ===== Kelas ===== */
		classes := map[string]classModel.ClassModel{}
		for _, c := range s.Classes {
			key := classKey(c.Level, c.Section)
			var existing classModel.ClassModel
			err := tx.Where("class_level = ? AND UPPER(class_section) = ?", c.Level, strings.ToUpper(strings.TrimSpace(c.Section))).
				Take(&existing).Error
			switch {
			case err == nil:
				classes[key] = existing
				log.Debug("ℹ️ kelas sudah ada, lewati", zap.String("class", key))
				continue
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return errors.Wrap(err, "cek kelas")
			}
			row := classModel.ClassModel{ClassLevel: c.Level, ClassSection: strings.ToUpper(strings.TrimSpace(c.Section)), ClassName: c.Name}
			if err := tx.Create(&row).Error; err != nil {
				return errors.Wrapf(err, "buat kelas %s", key)
			}
			classes[key] = row
			st.Classes++
		}

		/* ===== Mapel + penawaran ===== */
		for _, sj := range s.Subjects {
			code := strings.ToUpper(strings.TrimSpace(sj.Code))
			var subj subjectModel.SubjectModel
			err := tx.Where("subject_code = ?", code).Take(&subj).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				subj = subjectModel.SubjectModel{SubjectCode: code, SubjectName: sj.Name}
				if err := tx.Create(&subj).Error; err != nil {
					return errors.Wrapf(err, "buat mapel %s", code)
				}
				st.Subjects++
			} else if err != nil {
				return errors.Wrap(err, "cek mapel")
			}

			for _, ck := range sj.ClassKeys {
				cls, ok := classes[strings.ToUpper(strings.TrimSpace(ck))]
				if !ok {
					return errors.Errorf("mapel %s: kelas %q tidak ada di seed", code, ck)
				}
				var n int64
				if err := tx.Model(&subjectModel.ClassSubjectModel{}).
					Where("class_subject_class_id = ? AND class_subject_subject_id = ?", cls.ClassID, subj.SubjectID).
					Count(&n).Error; err != nil {
					return errors.Wrap(err, "cek penawaran mapel")
				}
				if n > 0 {
					continue
				}
				off := subjectModel.ClassSubjectModel{
					ClassSubjectClassID:   cls.ClassID,
					ClassSubjectSubjectID: subj.SubjectID,
					ClassSubjectIsActive:  true,
				}
				if err := tx.Create(&off).Error; err != nil {
					return errors.Wrap(err, "buat penawaran mapel")
				}
				st.Offerings++
			}
		}

		/* ===== Siswa ===== */
		for _, sd := range s.Students {
			nis := strings.TrimSpace(sd.NIS)
			if nis != "" {
				var n int64
				if err := tx.Model(&studentModel.StudentModel{}).Where("student_nis = ?", nis).Count(&n).Error; err != nil {
					return errors.Wrap(err, "cek siswa")
				}
				if n > 0 {
					continue
				}
			}
			row := studentModel.StudentModel{StudentName: sd.Name}
			if nis != "" {
				row.StudentNIS = &nis
			}
			if ck := strings.TrimSpace(sd.Class); ck != "" {
				cls, ok := classes[strings.ToUpper(ck)]
				if !ok {
					return errors.Errorf("siswa %s: kelas %q tidak ada di seed", sd.Name, ck)
				}
				id := cls.ClassID
				row.StudentCurrentClassID = &id
			}
			if err := tx.Create(&row).Error; err != nil {
				return errors.Wrapf(err, "buat siswa %s", sd.Name)
			}
			st.Students++
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	log.Info("🌱 seed selesai",
		zap.Int("classes", st.Classes),
		zap.Int("subjects", st.Subjects),
		zap.Int("offerings", st.Offerings),
		zap.Int("students", st.Students),
	)
	return st, nil
}
