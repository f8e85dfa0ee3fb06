package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeError(t *testing.T) {
	ctx := context.TODO()

	w := httptest.NewRecorder()

	kithttp.ErrorHandler(0).HandleHTTPError(ctx, nil, w)

	if w.Code != 200 {
		t.Errorf("expected status code 200, got: %d", w.Code)
	}
}

func TestEncodeErrorWithError(t *testing.T) {
	ctx := context.TODO()
	err := &errors.Error{
		Code: errors.EInternal,
		Msg:  "an error occurred",
		Err:  fmt.Errorf("there's an error here, be aware"),
	}

	w := httptest.NewRecorder()

	kithttp.ErrorHandler(0).HandleHTTPError(ctx, err, w)

	if w.Code != 500 {
		t.Errorf("expected status code 500, got: %d", w.Code)
	}

	errHeader := w.Header().Get(kithttp.ErrorCodeHeader)
	if errHeader != errors.EInternal {
		t.Errorf("expected %s: %s, got: %s", kithttp.ErrorCodeHeader, errors.EInternal, errHeader)
	}

	// the wrapped error stays server side
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, errors.EInternal, body.Code)
	assert.Equal(t, "an error occurred", body.Message)
}

func TestEncodeError_InternalDetailNotLeaked(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.Error
		want string
	}{
		{
			name: "internal error hides the wrapped cause",
			err: &errors.Error{
				Code: errors.EInternal,
				Msg:  "unable to list tenants",
				Err:  fmt.Errorf("database is locked (5) (SQLITE_BUSY)"),
			},
			want: "unable to list tenants",
		},
		{
			name: "internal error without a message stays generic",
			err: &errors.Error{
				Code: errors.EInternal,
				Err:  fmt.Errorf("database is locked (5) (SQLITE_BUSY)"),
			},
			want: "An internal error has occurred",
		},
		{
			name: "client errors keep the full chain",
			err: &errors.Error{
				Code: errors.EInvalid,
				Msg:  "invalid tenant id",
				Err:  fmt.Errorf("id must have a length of 16 bytes"),
			},
			want: "invalid tenant id: id must have a length of 16 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			kithttp.ErrorHandler(0).HandleHTTPError(context.TODO(), tt.err, w)

			var body struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Message)
		})
	}
}

func TestEncodeError_StatusCodes(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{errors.EInvalid, http.StatusBadRequest},
		{errors.EEmptyValue, http.StatusBadRequest},
		{errors.ENotFound, http.StatusNotFound},
		{errors.EConflict, http.StatusConflict},
		{errors.ENotImplemented, http.StatusNotImplemented},
		{errors.EUnauthorized, http.StatusUnauthorized},
		{errors.EForbidden, http.StatusForbidden},
		{errors.ETooManyRequests, http.StatusTooManyRequests},
		{errors.EUnavailable, http.StatusServiceUnavailable},
		{"made-up-code", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			kithttp.ErrorHandler(0).HandleHTTPError(context.TODO(), &errors.Error{Code: tt.code, Msg: "nope"}, w)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestEncodeError_OpaqueError(t *testing.T) {
	w := httptest.NewRecorder()
	kithttp.ErrorHandler(0).HandleHTTPError(context.TODO(), fmt.Errorf("disk on fire"), w)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "An internal error has occurred", body.Message)
}
