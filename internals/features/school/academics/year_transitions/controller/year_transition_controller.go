// file: internals/features/school/academics/year_transitions/controller/year_transition_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	termSvc "schoolku_backend/internals/features/school/academics/academic_terms/service"
	dto "schoolku_backend/internals/features/school/academics/year_transitions/dto"
	service "schoolku_backend/internals/features/school/academics/year_transitions/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/helpers/logger"
)

type YearTransitionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Engine    *service.Engine
	Locker    locker.Locker
	Log       *zap.Logger
	LockTTL   time.Duration
}

func NewYearTransitionController(db *gorm.DB, lk locker.Locker, log *zap.Logger) *YearTransitionController {
	log = logger.OrNop(log)
	return &YearTransitionController{
		DB:        db,
		Validator: helper.NewValidator(),
		Engine:    service.NewEngine(db, log),
		Locker:    lk,
		Log:       log,
		LockTTL:   locker.DefaultTTL,
	}
}

/* =========================================================
   POST /api/a/year-transitions
   body: {new_year_label?, repeat_student_ids?, copy_homeroom?, dry_run?, from_academic_year_id?}
========================================================= */

func (ctl *YearTransitionController) Transition(c *fiber.Ctx) error {
	var req dto.TransitionRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromServiceError(c, err)
	}

	// 📅 Tahun asal: eksplisit, atau tahun aktif; belum ada sama sekali → transisi pertama
	var (
		ac  termSvc.AcademicContext
		err error
	)
	if req.FromAcademicYearID != nil {
		ac, err = termSvc.ContextForYear(c.Context(), ctl.DB, *req.FromAcademicYearID)
	} else {
		ac, err = termSvc.ResolveActiveContext(c.Context(), ctl.DB)
		var pe *helper.PreconditionError
		if errors.As(err, &pe) {
			ac, err = termSvc.AcademicContext{}, nil
		}
	}
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	// 🔒 Satu transisi in-flight
	release, err := ctl.Locker.Acquire(c.Context(), locker.ScopeYearTransition, ctl.LockTTL)
	if errors.Is(err, locker.ErrBusy) {
		return helper.JsonError(c, fiber.StatusLocked, "Kenaikan kelas sedang diproses, coba lagi nanti")
	}
	if err != nil {
		ctl.Log.Error("gagal ambil lock kenaikan kelas", zap.Error(err))
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Lock tidak tersedia")
	}
	defer func() { _ = release(c.Context()) }()

	ctl.Log.Info("🎓 kenaikan kelas diminta",
		zap.String("actor", helper.ActorString(c)),
		zap.Bool("dry_run", req.DryRun),
		zap.Int("repeat_count", len(req.RepeatStudentIDs)),
	)

	res, err := ctl.Engine.Transition(c.Context(), ac, req.ToService())
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	msg := "Kenaikan kelas berhasil"
	if res.DryRun {
		msg = "Preview kenaikan kelas (dry run)"
	}
	return helper.JsonOK(c, msg, res)
}
