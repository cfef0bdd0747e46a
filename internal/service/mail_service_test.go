package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz_sensei_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mailConfig(baseURL string) *config.MailConfig {
	return &config.MailConfig{
		APIBaseURL:      baseURL,
		APIKey:          "test-key",
		SenderName:      "Quiz Sensei",
		SenderEmail:     "noreply@example.com",
		FrontendBaseURL: "https://quiz.example.com",
	}
}

func TestSendQuizLink(t *testing.T) {
	var received mailPayload
	var gotAPIKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/smtp/email", r.URL.Path)
		gotAPIKey = r.Header.Get("api-key")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := NewMailService(mailConfig(srv.URL))
	err := svc.SendQuizLink("student@example.com", "Grammar Basics", "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "noreply@example.com", received.Sender.Email)
	require.Len(t, received.To, 1)
	assert.Equal(t, "student@example.com", received.To[0].Email)
	assert.Equal(t, "Quiz Link", received.Subject)
	assert.Contains(t, received.HTMLContent, "https://quiz.example.com/quiz/abc-123")
	assert.Contains(t, received.HTMLContent, "Grammar Basics")
}

func TestSendQuizLinkAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer srv.Close()

	svc := NewMailService(mailConfig(srv.URL))
	err := svc.SendQuizLink("student@example.com", "Grammar Basics", "abc-123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestSendQuizLinkRejectsBadRecipient(t *testing.T) {
	svc := NewMailService(mailConfig("http://unused"))
	err := svc.SendQuizLink("not-an-email", "Grammar Basics", "abc-123")
	assert.Error(t, err)
}

func TestMailServiceEnabled(t *testing.T) {
	assert.True(t, NewMailService(mailConfig("http://unused")).Enabled())
	assert.False(t, NewMailService(&config.MailConfig{}).Enabled())
}
