// internal/app/features/donations/donation.go
package donations

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/churchhub/internal/app/store/audit"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/paging"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList lists donations newest first. Church leadership sees the whole
// church; everyone else sees their own gifts.
// GET /api/donations?type=&limit=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	filter := authz.DonationScope(u, userID)
	if t := strings.TrimSpace(query.Get(r, "type")); t != "" {
		filter["type"] = t
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Donations.Find(ctx, filter, paging.ParseLimit(r))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, list)
}

// ServeStats summarizes the donations the caller can see.
// GET /api/donations/stats
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.Donations.Stats(ctx, authz.DonationScope(u, userID), time.Now())
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	out := statsResponse{
		Total:      st.Total.InexactFloat64(),
		Count:      st.Count,
		MonthTotal: st.MonthTotal.InexactFloat64(),
		MonthCount: st.MonthCount,
		ByType:     make(map[string]float64, len(st.ByType)),
	}
	for t, v := range st.ByType {
		out.ByType[t] = v.InexactFloat64()
	}
	httperr.JSON(w, http.StatusOK, out)
}

// ServeDonation returns one donation to its donor or to church leadership.
// GET /api/donations/{id}
func (h *Handler) ServeDonation(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Donations.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Donation"))
		return
	}
	if !authz.CanViewDonation(u, d.Donor, d.ChurchID) {
		httperr.Fail(w, r, h.Log, httperr.Forbidden("not authorized to view this donation"))
		return
	}
	httperr.JSON(w, http.StatusOK, d)
}

// HandleCreate records a gift from the caller to the caller's church.
// POST /api/donations
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	church, ok := authz.ChurchID(u)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.BadRequest("join a church before giving"))
		return
	}

	var in createInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	d := models.Donation{
		Amount:    in.Amount,
		Currency:  strings.ToUpper(in.Currency),
		Type:      in.Type,
		Method:    in.Method,
		Status:    in.Status,
		Reference: in.Reference,
		Note:      in.Note,
		Anonymous: in.Anonymous,
		Donor:     userID,
		ChurchID:  church,
	}
	if in.Date != nil {
		d.Date = in.Date.UTC()
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Donations.Create(ctx, d)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusCreated, d)
}

// HandleUpdate applies replace-if-present changes. The donor, or church
// leadership, may update.
// PUT /api/donations/{id}
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

	var in updateInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Donations.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Donation"))
		return
	}
	if err := authz.AuthorizeOwner(u, authz.DonationManage, d.Donor, d.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	if in.Amount > 0 {
		d.Amount = in.Amount
	}
	if in.Currency != "" {
		d.Currency = strings.ToUpper(in.Currency)
	}
	if in.Type != "" {
		d.Type = in.Type
	}
	if in.Method != "" {
		d.Method = in.Method
	}
	if in.Status != "" {
		d.Status = in.Status
	}
	if in.Reference != "" {
		d.Reference = in.Reference
	}
	if in.Note != "" {
		d.Note = in.Note
	}
	if in.Anonymous != nil {
		d.Anonymous = *in.Anonymous
	}
	if in.Date != nil {
		d.Date = in.Date.UTC()
	}

	d, err = h.Donations.Save(ctx, d)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Donation"))
		return
	}
	httperr.JSON(w, http.StatusOK, d)
}

// HandleDelete removes a donation under the same rules as HandleUpdate.
// DELETE /api/donations/{id}
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

	d, err := h.Donations.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Donation"))
		return
	}
	if err := authz.AuthorizeOwner(u, authz.DonationManage, d.Donor, d.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if _, err := h.Donations.Delete(ctx, d.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventDonationDeleted, userID, d.ChurchID, d.ID, &d.Donor)
	httperr.Write(w, http.StatusOK, "Donation removed")
}
