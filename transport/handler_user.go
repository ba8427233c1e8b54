package transport

import (
	"net/http"

	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	utilsContext "github.com/muhammadheryan/telecom-distribution/utils/context"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
)

// Logout handler
// @Summary Logout
// @Description Ends the current session
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/auth/logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := utilsContext.GetSessionID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.UserApp.Logout(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, model.MessageResponse{Message: "logged out"})
}

// Me handler
// @Summary Current user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/users/me [get]
func (s *RestHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.Me(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetPreferences handler
// @Summary Theme and language preferences
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Preferences
// @Router /api/users/me/preferences [get]
func (s *RestHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.GetPreferences(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdatePreferences handler
// @Summary Update theme and language preferences
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.Preferences true "Preferences"
// @Success 200 {object} model.Preferences
// @Failure 400 {object} model.ErrorResponse
// @Router /api/users/me/preferences [put]
func (s *RestHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.Preferences
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.UpdatePreferences(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateUser handler
// @Summary Provision an agent or retailer
// @Description Distributor only; the new user is placed under the distributor
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateUserRequest true "Create User Request"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/users/create [post]
func (s *RestHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CreateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.CreateUser(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// ListAgents handler
// @Summary Available agents
// @Description For a retailer, the agents it may send requests to
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.UserResponse
// @Router /api/users/agents [get]
func (s *RestHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	actor, err := principalFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.ListAgents(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
