// internal/app/features/departments/department.go
package departments

import (
	"context"
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/store/audit"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/paging"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList lists the departments of the caller's church (or ?church=) by
// name. ?active=true or ?active=false filters on isActive.
// GET /api/departments?church=&active=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	scope, err := authz.ScopeList(u, query.Get(r, "church"))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	filter := scope.Filter()
	if query.Get(r, "active") != "" {
		filter = bson.M{"$and": []bson.M{filter, {"is_active": paging.ParseFlag(r, "active")}}}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Departments.Find(ctx, filter)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, list)
}

// ServeDepartment returns one department.
// GET /api/departments/{id}
func (h *Handler) ServeDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Departments.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Department"))
		return
	}
	httperr.JSON(w, http.StatusOK, d)
}

// HandleCreate creates a department in the caller's church. Only church
// leadership (admin, pastor) may create; isActive defaults to true.
// POST /api/departments
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	church, _ := authz.ChurchID(u)
	if err := authz.Authorize(u, authz.DepartmentCreate, church); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	var in departmentInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Var("name", in.Name, "required"); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	head, err := reqjson.OptionalID("head", in.Head)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	d := models.Department{
		Name:        in.Name,
		Description: in.Description,
		Head:        head,
		IsActive:    true,
		ChurchID:    church,
		CreatedBy:   userID,
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err = h.Departments.Create(ctx, d)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusCreated, d)
}

// HandleUpdate applies replace-if-present changes; isActive applies whenever
// present, including false.
// PUT /api/departments/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u, _, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	var in departmentInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	head, err := reqjson.OptionalID("head", in.Head)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Departments.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Department"))
		return
	}
	if err := authz.Authorize(u, authz.DepartmentUpdate, d.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	if in.Name != "" {
		d.Name = in.Name
	}
	if in.Description != "" {
		d.Description = in.Description
	}
	if head != nil {
		d.Head = head
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}

	d, err = h.Departments.Save(ctx, d)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Department"))
		return
	}
	httperr.JSON(w, http.StatusOK, d)
}

// HandleDelete removes a department. Member users are not touched.
// DELETE /api/departments/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Departments.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Department"))
		return
	}
	if err := authz.Authorize(u, authz.DepartmentDelete, d.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if _, err := h.Departments.Delete(ctx, d.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	h.Audit.AdminAction(ctx, r, audit.EventDepartmentDeleted, userID, d.ChurchID, d.ID, nil)
	httperr.Write(w, http.StatusOK, "Department removed")
}
