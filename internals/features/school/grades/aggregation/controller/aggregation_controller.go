// file: internals/features/school/grades/aggregation/controller/aggregation_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aggSvc "schoolku_backend/internals/features/school/grades/aggregation/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/helpers/logger"
)

type ComputeRequest struct {
	ClassID uuid.UUID `json:"class_id" validate:"required"`
}

type AggregationController struct {
	Validator *validator.Validate
	Engine    *aggSvc.Engine
	Locker    locker.Locker
	Log       *zap.Logger
	LockTTL   time.Duration
}

func NewAggregationController(db *gorm.DB, lk locker.Locker, log *zap.Logger) *AggregationController {
	log = logger.OrNop(log)
	return &AggregationController{
		Validator: helper.NewValidator(),
		Engine:    aggSvc.NewEngine(db, log),
		Locker:    lk,
		Log:       log,
		LockTTL:   locker.DefaultTTL,
	}
}

// POST /api/t/grade-structures/:id/compute  body: {class_id}
func (ctl *AggregationController) Compute(c *fiber.Ctx) error {
	structureID, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req ComputeRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromServiceError(c, err)
	}

	release, err := ctl.Locker.Acquire(c.Context(), locker.ScopeGradeAggregation(req.ClassID, structureID), ctl.LockTTL)
	if errors.Is(err, locker.ErrBusy) {
		return helper.JsonError(c, fiber.StatusLocked, "Perhitungan nilai akhir kelas ini sedang berjalan")
	}
	if err != nil {
		ctl.Log.Error("gagal ambil lock hitung nilai", zap.Error(err))
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Lock tidak tersedia")
	}
	defer func() { _ = release(c.Context()) }()

	res, err := ctl.Engine.ComputeFinal(c.Context(), req.ClassID, structureID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Nilai akhir dihitung", res)
}
