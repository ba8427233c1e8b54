package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	utilsContext "github.com/muhammadheryan/telecom-distribution/utils/context"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	validatorx "github.com/muhammadheryan/telecom-distribution/utils/validator"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[writeJSON] err encode response", zap.String("error", err.Error()))
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}

// writeError renders any error as an ErrorResponse; unknown errors become internal errors.
func writeError(w http.ResponseWriter, err error) {
	var ce errors.CustomError
	if !stderrors.As(err, &ce) {
		logger.Error("[writeError] unexpected error", zap.String("error", err.Error()))
		ce = errors.SetCustomError(constant.ErrInternal)
	}

	writeJSON(w, ce.ErrorHTTPCode(), model.ErrorResponse{
		Code:    ce.ErrorCode(),
		Message: ce.Error(),
		Detail:  ce.Detail(),
	})
}

// decodeAndValidate reads a JSON body into dst and runs struct validation on it.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "invalid request body")
	}
	if err := validatorx.ValidateStruct(dst); err != nil {
		return errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, validatorx.Message(err))
	}
	return nil
}

func principalFrom(r *http.Request) (model.Principal, error) {
	p, ok := utilsContext.GetPrincipal(r.Context())
	if !ok {
		return model.Principal{}, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return p, nil
}

func pathID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "invalid id")
	}
	return id, nil
}
