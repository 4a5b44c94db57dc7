package helper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

/* ===============================
   Error kinds dari service/engine
   (dipetakan ke HTTP oleh FromServiceError)
=================================*/

// ValidationError: input salah per field, tidak ada yang ditulis.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add menambah pesan untuk satu field. Aman dipanggil berkali-kali.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

func (e *ValidationError) HasErrors() bool { return e != nil && len(e.Fields) > 0 }

// OrNil: kembalikan nil kalau belum ada field error (biar `return v.OrNil()` rapi).
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ConflictError: operasi ditolak karena ada data lain yang mengunci (mis. komponen nilai).
type ConflictError struct {
	Message  string
	Blocking int64
}

func (e *ConflictError) Error() string {
	if e.Blocking > 0 {
		return fmt.Sprintf("%s (blocking=%d)", e.Message, e.Blocking)
	}
	return e.Message
}

// PreconditionError: prasyarat operasi belum terpenuhi (tahun ajaran aktif tidak ada, dll).
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// NotFoundError: entitas yang dirujuk lewat path tidak ada.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// FromValidator mengubah validator.ValidationErrors → ValidationError (key = nama field json).
func FromValidator(err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := NewValidationError()
	for _, fe := range ve {
		out.Add(fieldPath(fe), validationMessage(fe))
	}
	return out
}

// fieldPath: namespace tanpa nama struct root, mis. "repeat_student_ids[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "min":
		return "minimal " + fe.Param()
	case "max":
		return "maksimal " + fe.Param()
	case "gte":
		return "harus >= " + fe.Param()
	case "lte":
		return "harus <= " + fe.Param()
	case "uuid", "uuid4":
		return "harus UUID"
	case "dive":
		return "isi tidak valid"
	default:
		return fe.Tag()
	}
}
