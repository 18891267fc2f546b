// internal/app/features/dashboard/stats.go
package dashboard

import (
	"net/http"
	"time"

	metricsstore "github.com/dalemusser/churchhub/internal/app/store/metrics"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
)

type monthlyDonations struct {
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

type statsResponse struct {
	TotalMembers     int64            `json:"totalMembers"`
	EventsThisMonth  int64            `json:"eventsThisMonth"`
	UpcomingEvents   int64            `json:"upcomingEvents"`
	TotalGroups      int64            `json:"totalGroups"`
	TotalDepartments int64            `json:"totalDepartments"`
	TotalMedia       int64            `json:"totalMedia"`
	MonthlyDonations monthlyDonations `json:"monthlyDonations"`
	MonthStart       time.Time        `json:"monthStart"`
	MonthEnd         time.Time        `json:"monthEnd"`
}

// ServeStats returns church-wide totals for the caller's church, with the
// month counts covering the server's current calendar month.
// GET /api/dashboard/stats
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	u, _, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	church, ok := authz.ChurchID(u)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.BadRequest("join a church to see its statistics"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "dashboard stats")
	defer cancel()

	c, err := metricsstore.FetchChurchCounts(ctx, h.DB, church, time.Now())
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	httperr.JSON(w, http.StatusOK, statsResponse{
		TotalMembers:     c.Members,
		EventsThisMonth:  c.EventsThisMonth,
		UpcomingEvents:   c.UpcomingEvents,
		TotalGroups:      c.Groups,
		TotalDepartments: c.Departments,
		TotalMedia:       c.Media,
		MonthlyDonations: monthlyDonations{
			Count: c.DonationsCount,
			Total: c.DonationsTotal.InexactFloat64(),
		},
		MonthStart: c.MonthStart,
		MonthEnd:   c.MonthEnd,
	})
}
