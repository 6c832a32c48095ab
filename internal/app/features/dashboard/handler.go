// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/bobprince4u/admin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// RecentCount is how many contacts the dashboard lists.
const RecentCount = 5

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

type recentRow struct {
	ID          string
	Initial     string
	Name        string
	Email       string
	Service     string
	Status      models.ContactStatus
	StatusClass string
	Date        string
}

type dashboardData struct {
	viewdata.BaseVM
	Stats  models.DashboardStats
	Recent []recentRow
}

// ServeDashboard handles GET /.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	c, ok := console.FromRequest(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "dashboard", buildData(w, r, h.SessionMgr, c))
}

func buildData(w http.ResponseWriter, r *http.Request, notices viewdata.NoticeSource, c *console.Controller) dashboardData {
	recent := c.RecentContacts(RecentCount)
	rows := make([]recentRow, 0, len(recent))
	for _, ct := range recent {
		rows = append(rows, recentRow{
			ID:          ct.ID,
			Initial:     ct.Initial(),
			Name:        ct.FullName,
			Email:       ct.Email,
			Service:     ct.Service,
			Status:      ct.Status,
			StatusClass: viewdata.StatusClass(ct.Status),
			Date:        viewdata.DisplayDate(ct.CreatedAt),
		})
	}
	return dashboardData{
		BaseVM: viewdata.ForView(w, r, notices, viewdata.ViewDashboard, "/"),
		Stats:  c.Stats(),
		Recent: rows,
	}
}
