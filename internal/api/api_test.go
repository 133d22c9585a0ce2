package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fritter/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, time.October, 19, 15, 4, 5, 0, time.UTC), "October 19th 2026, 3:04:05 pm"},
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "January 1st 2024, 12:00:00 am"},
		{time.Date(2023, time.March, 22, 9, 30, 1, 0, time.UTC), "March 22nd 2023, 9:30:01 am"},
		{time.Date(2025, time.December, 13, 23, 59, 59, 0, time.UTC), "December 13th 2025, 11:59:59 pm"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDate(tc.in))
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteErrorKeyed(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, utils.NewNotFoundError("commentNotFound", "Comment with comment ID x does not exist."))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, map[string]interface{}{"commentNotFound": "Comment with comment ID x does not exist."}, body["error"])
}

func TestWriteErrorPlain(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, utils.NewForbiddenError("You must be logged in."))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You must be logged in.", decodeError(t, rec)["error"])
}

func TestWriteErrorHidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rec)["error"])
}
