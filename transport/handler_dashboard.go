package transport

import (
	"net/http"
)

// Dashboard handler
// @Summary Role dashboard
// @Description Stats, capabilities, request rows with actions and, for agents, the stock panel
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.DashboardView
// @Router /api/dashboard [get]
func (s *RestHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.DashboardApp.View(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DashboardStats handler
// @Summary Role statistics
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object
// @Router /api/dashboard/stats [get]
func (s *RestHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.DashboardApp.Stats(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListNotifications handler
// @Summary Recent notifications
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Notification
// @Router /api/notifications [get]
func (s *RestHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.NotificationApp.List(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
