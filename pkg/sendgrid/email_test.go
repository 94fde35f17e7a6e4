package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	sendgrid_client "github.com/hlewluv/Food-Delivery-App-sub000/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestNewEmailService(t *testing.T) {
	service := sendgrid_client.NewEmailService("test-api-key", "orders@example.com", "Food Delivery")

	assert.NotNil(t, service)
	assert.NotNil(t, service.GetSendGridClient())
}

func TestEmailService_Send(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "orders@example.com"
	fromName := "Food Delivery"

	tests := []struct {
		name          string
		req           *models.EmailNotificationRequest
		status        int
		expectedError string
		checkPayload  func(t *testing.T, payload sendgridV3Payload)
	}{
		{
			name: "Success - Text and HTML",
			req: &models.EmailNotificationRequest{
				To:          "customer@example.com",
				Subject:     "Your order is confirmed",
				Content:     "Total: 152000 VND",
				HTMLContent: "<p>Total: 152000 VND</p>",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				require.Len(t, p.Personalizations[0].To, 1)
				assert.Equal(t, "customer@example.com", p.Personalizations[0].To[0]["email"])
				assert.Equal(t, "Your order is confirmed", p.Personalizations[0].Subject)
				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])
				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "text/html", p.Content[1].Type)
			},
		},
		{
			name: "Success - Plain text only",
			req: &models.EmailNotificationRequest{
				To:      "customer@example.com",
				Subject: "Your order is confirmed",
				Content: "Total: 152000 VND",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Content, 1)
				assert.Equal(t, "Total: 152000 VND", p.Content[0].Value)
			},
		},
		{
			name: "Failure - SendGrid API Error (4xx)",
			req: &models.EmailNotificationRequest{
				To:      "bad@example.com",
				Subject: "Subject",
				Content: "Content",
			},
			status:        http.StatusBadRequest,
			expectedError: "failed to send email, status code: 400",
		},
		{
			name: "Failure - SendGrid API Error (5xx)",
			req: &models.EmailNotificationRequest{
				To:      "customer@example.com",
				Subject: "Subject",
				Content: "Content",
			},
			status:        http.StatusInternalServerError,
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var payload sendgridV3Payload

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.NoError(t, json.Unmarshal(body, &payload))

				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
			service.GetSendGridClient().Request.BaseURL = server.URL

			// Act
			err := service.Send(t.Context(), tc.req)

			// Assert
			if tc.expectedError == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.expectedError)
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, payload)
			}
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
		service.GetSendGridClient().Request.BaseURL = server.URL
		server.Close()

		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "customer@example.com", Subject: "s", Content: "c"})

		assert.Error(t, err)
	})
}
