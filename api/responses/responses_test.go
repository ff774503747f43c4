package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

func TestWriteSuccessWrapsDataEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"status": "ok"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "ok", envelope.Data["status"])
}

func TestWriteErrorMapsCodeToStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "not found keeps its message",
			err:        pkgerrors.New(pkgerrors.CodeNotFound, "order not found"),
			wantStatus: 404,
			wantCode:   "NOT_FOUND",
			wantMsg:    "order not found",
		},
		{
			name:       "conflict keeps its message",
			err:        pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock"),
			wantStatus: 409,
			wantCode:   "CONFLICT",
			wantMsg:    "insufficient stock",
		},
		{
			name:       "internal hides its message",
			err:        pkgerrors.New(pkgerrors.CodeInternal, "db exploded"),
			wantStatus: 500,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
		{
			name:       "uncoded error becomes internal",
			err:        assert.AnError,
			wantStatus: 500,
			wantCode:   "INTERNAL_ERROR",
			wantMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var envelope types.ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tc.wantCode, envelope.Error.Code)
			assert.Equal(t, tc.wantMsg, envelope.Error.Message)
		})
	}
}

func TestWriteErrorGatesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"username": "is required"})
	WriteError(context.Background(), nil, rec, err)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error.Details)

	// Internal errors never leak details.
	rec = httptest.NewRecorder()
	leaky := pkgerrors.New(pkgerrors.CodeInternal, "boom").
		WithDetails(map[string]string{"dsn": "postgres://secret"})
	WriteError(context.Background(), nil, rec, leaky)

	envelope = types.ErrorEnvelope{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Error.Details)
}
