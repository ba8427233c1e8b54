package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/muhammadheryan/telecom-distribution/constant"
	cerr "github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/stretchr/testify/assert"
)

func TestCustomError(t *testing.T) {
	err := cerr.SetCustomError(constant.ErrForbidden)
	assert.Equal(t, "0007", err.ErrorCode())
	assert.Equal(t, http.StatusForbidden, err.ErrorHTTPCode())
	assert.Equal(t, err.Error(), err.Detail())

	withDetail := cerr.SetCustomErrorWithDetail(constant.ErrInvalidRequest, "quantity must be greater than 0")
	assert.Equal(t, "quantity must be greater than 0", withDetail.Detail())
	assert.Equal(t, constant.ErrorTypeMessage[constant.ErrInvalidRequest], withDetail.Error())

	wrapped := fmt.Errorf("create: %w", withDetail)
	assert.True(t, errors.Is(wrapped, cerr.SetCustomError(constant.ErrInvalidRequest)))
	assert.False(t, errors.Is(wrapped, cerr.SetCustomError(constant.ErrForbidden)))
}
