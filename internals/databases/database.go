package database

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	teachersStudentsModel "schoolku_backend/internals/features/lembaga/teachers_students/model"
	academicTermModel "schoolku_backend/internals/features/school/academics/academic_terms/model"
	subjectModel "schoolku_backend/internals/features/school/academics/subjects/model"
	classHistoryModel "schoolku_backend/internals/features/school/classes/class_histories/model"
	classModel "schoolku_backend/internals/features/school/classes/classes/model"
	homeroomModel "schoolku_backend/internals/features/school/classes/homerooms/model"
	finalGradeModel "schoolku_backend/internals/features/school/grades/final_grades/model"
	gradeComponentModel "schoolku_backend/internals/features/school/grades/grade_components/model"
	gradeStructureModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
	"schoolku_backend/internals/helpers/logger"
)

var DB *gorm.DB

func ConnectDB(log *zap.Logger) (*gorm.DB, error) {
	log = logger.OrNop(log)
	log.Info("🔌 Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  configs.PostgresDSN(),
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "gagal konek DB")
	}
	DB = db
	log.Info("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "pool tune")
	}
	// ⚖️ Sesuaikan dengan limit Postgres/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Models dipakai AutoMigrate (server, CLI, dan testutil).
func Models() []any {
	return []any{
		&teachersStudentsModel.StudentModel{},
		&classModel.ClassModel{},
		&subjectModel.SubjectModel{},
		&subjectModel.ClassSubjectModel{},
		&academicTermModel.AcademicYearModel{},
		&academicTermModel.AcademicTermModel{},
		&classHistoryModel.ClassHistoryModel{},
		&homeroomModel.HomeroomModel{},
		&gradeStructureModel.GradeStructureModel{},
		&gradeComponentModel.GradeComponentModel{},
		&finalGradeModel.FinalGradeModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
