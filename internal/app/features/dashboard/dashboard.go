// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	announcementstore "github.com/dalemusser/churchhub/internal/app/store/announcements"
	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/paging"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type overview struct {
	User                *auth.SessionUser     `json:"user"`
	Church              *models.Church        `json:"church"`
	UpcomingEvents      []models.Event        `json:"upcomingEvents"`
	RecentAnnouncements []models.Announcement `json:"recentAnnouncements"`
	RecentDonations     []models.Donation     `json:"recentDonations"`
	RecentMedia         []models.Media        `json:"recentMedia"`
}

// ServeDashboard returns the caller's landing data: their church, the next
// few events, and the latest announcements, donations, and media. A caller
// without a church gets empty lists and a null church.
// GET /api/dashboard
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	out := overview{
		User:                u,
		UpcomingEvents:      []models.Event{},
		RecentAnnouncements: []models.Announcement{},
		RecentDonations:     []models.Donation{},
		RecentMedia:         []models.Media{},
	}

	church, ok := authz.ChurchID(u)
	if !ok {
		httperr.JSON(w, http.StatusOK, out)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Churches.GetByID(ctx, church)
	switch {
	case err == nil:
		out.Church = &c
	case !errors.Is(err, mongo.ErrNoDocuments):
		httperr.Fail(w, r, h.Log, err)
		return
	}

	now := time.Now().UTC()
	if out.UpcomingEvents, err = h.Events.Upcoming(ctx, church, now, paging.DashboardSize); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if out.RecentAnnouncements, err = h.Announcements.ListByChurch(ctx, church, announcementstore.ListOptions{
		Now:   now,
		Limit: paging.DashboardSize,
	}); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if out.RecentDonations, err = h.Donations.Recent(ctx, authz.DonationScope(u, userID), paging.DashboardSize); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if out.RecentMedia, err = h.Media.Find(ctx, authz.ListScope{ChurchID: church}.Filter(), paging.DashboardSize); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	httperr.JSON(w, http.StatusOK, out)
}
