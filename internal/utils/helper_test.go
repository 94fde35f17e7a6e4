package utils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	appErrors "github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type locationBody struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode int
	}{
		{name: "Success", body: `{"lat":10.762,"lng":106.682}`, wantOK: true, wantCode: http.StatusOK},
		{name: "Empty body", body: ``, wantOK: false, wantCode: http.StatusBadRequest},
		{name: "Malformed JSON", body: `{"lat":`, wantOK: false, wantCode: http.StatusBadRequest},
		{name: "Out of range", body: `{"lat":120,"lng":0}`, wantOK: false, wantCode: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/couriers/location", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			var dest locationBody
			ok := utils.ParseAndValidate(req, rec, &dest, validate)

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestParseID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+id.String(), nil)
		req.SetPathValue("id", id.String())

		got, err := utils.ParseID(req, "id")

		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("Failure - Invalid UUID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc", nil)
		req.SetPathValue("id", "abc")

		_, err := utils.ParseID(req, "id")

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	})

	t.Run("Failure - Missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/", nil)

		_, err := utils.ParseID(req, "id")

		assert.ErrorContains(t, err, "Missing path parameter")
	})
}
