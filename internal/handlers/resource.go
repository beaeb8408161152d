package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/groupebh/gbh-backend/auth"
	"github.com/groupebh/gbh-backend/httpx"
	"github.com/groupebh/gbh-backend/internal/policy"
	"github.com/groupebh/gbh-backend/validation"
)

// Resource is the one admin CRUD implementation shared by every content type.
// T is the gorm model. All four operations follow the same contract: decode,
// validate, mutate, then re-read the record from the database before
// responding, so clients always see server-derived fields and never need an
// optimistic local patch.
type Resource[T any] struct {
	DB       *gorm.DB
	Gate     *policy.Gate[string]
	Name     string // gate resource type, e.g. "news"
	Order    string // list order clause
	Validate func(*T, validation.Violations)
}

// Register wires the four routes under path (e.g. "/api/admin/news").
func (rs *Resource[T]) Register(mux *http.ServeMux, path string) {
	mux.HandleFunc("GET "+path, rs.List)
	mux.HandleFunc("POST "+path, rs.Create)
	mux.HandleFunc("PUT "+path+"/{id}", rs.Update)
	mux.HandleFunc("DELETE "+path+"/{id}", rs.Delete)
}

func (rs *Resource[T]) authorize(w http.ResponseWriter, r *http.Request, action policy.Action) bool {
	role := auth.RoleFromContext(r.Context())
	if err := rs.Gate.Authorize(r.Context(), role, action, rs.Name, nil); err != nil {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return false
	}
	return true
}

func (rs *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	if !rs.authorize(w, r, policy.ActionList) {
		return
	}
	order := rs.Order
	if order == "" {
		order = "display_order asc, id asc"
	}
	var records []T
	if err := rs.DB.WithContext(r.Context()).Order(order).Find(&records).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "list_failed", nil)
		return
	}
	if records == nil {
		records = []T{}
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (rs *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	if !rs.authorize(w, r, policy.ActionCreate) {
		return
	}
	var rec T
	fields, err := httpx.DecodeJSONFields(r, &rec)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if rs.Validate != nil {
		v := validation.Violations{}
		rs.Validate(&rec, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
	}
	setRecordID(&rec, 0) // ids are always server-assigned
	if _, ok := fields["isActive"]; !ok {
		// New records publish unless the payload says otherwise.
		setActiveFlag(&rec, true)
	}
	if err := rs.DB.WithContext(r.Context()).Create(&rec).Error; err != nil {
		if isDuplicate(err) {
			httpx.JSONError(w, http.StatusConflict, "already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	var fresh T
	if err := rs.DB.WithContext(r.Context()).First(&fresh, recordID(&rec)).Error; err != nil {
		httpx.JSON(w, http.StatusCreated, rec)
		return
	}
	httpx.JSON(w, http.StatusCreated, fresh)
}

func (rs *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	if !rs.authorize(w, r, policy.ActionUpdate) {
		return
	}
	id := pathID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var existing T
	if err := rs.DB.WithContext(r.Context()).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	var rec T
	fields, err := httpx.DecodeJSONFields(r, &rec)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if rs.Validate != nil {
		v := validation.Violations{}
		rs.Validate(&rec, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
	}
	setRecordID(&rec, id)
	preserveCreatedAt(&rec, &existing)
	if _, ok := fields["isActive"]; !ok {
		// A payload that omits the flag must not flip publication state.
		copyActiveFlag(&rec, &existing)
	}
	if err := rs.DB.WithContext(r.Context()).Save(&rec).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	var fresh T
	if err := rs.DB.WithContext(r.Context()).First(&fresh, id).Error; err != nil {
		httpx.JSON(w, http.StatusOK, rec)
		return
	}
	httpx.JSON(w, http.StatusOK, fresh)
}

func (rs *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if !rs.authorize(w, r, policy.ActionDelete) {
		return
	}
	id := pathID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var rec T
	result := rs.DB.WithContext(r.Context()).Delete(&rec, id)
	if result.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	if result.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func pathID(r *http.Request) uint {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique") ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// recordID and setRecordID reach the conventional uint ID primary key of a
// model without requiring every type to implement an accessor.
func recordID(rec any) uint {
	f := reflect.ValueOf(rec).Elem().FieldByName("ID")
	if !f.IsValid() || f.Kind() != reflect.Uint {
		return 0
	}
	return uint(f.Uint())
}

// preserveCreatedAt copies the stored creation timestamp into the incoming
// payload so a full-record Save cannot zero it.
func preserveCreatedAt(rec, existing any) {
	dst := reflect.ValueOf(rec).Elem().FieldByName("CreatedAt")
	src := reflect.ValueOf(existing).Elem().FieldByName("CreatedAt")
	if dst.IsValid() && src.IsValid() && dst.CanSet() && dst.Type() == src.Type() {
		dst.Set(src)
	}
}

// setActiveFlag sets IsActive on models that carry the flag; a no-op for
// models without one (categories, messages).
func setActiveFlag(rec any, active bool) {
	f := reflect.ValueOf(rec).Elem().FieldByName("IsActive")
	if f.IsValid() && f.Kind() == reflect.Bool && f.CanSet() {
		f.SetBool(active)
	}
}

func copyActiveFlag(rec, existing any) {
	src := reflect.ValueOf(existing).Elem().FieldByName("IsActive")
	if src.IsValid() && src.Kind() == reflect.Bool {
		setActiveFlag(rec, src.Bool())
	}
}

func setRecordID(rec any, id uint) {
	f := reflect.ValueOf(rec).Elem().FieldByName("ID")
	if f.IsValid() && f.Kind() == reflect.Uint && f.CanSet() {
		f.SetUint(uint64(id))
	}
}
