package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTextPostsGraphAPIPayload(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody TextMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.test"}]}`))
	}))
	defer srv.Close()

	client := NewClient("12345", "secret-token")
	client.baseURL = srv.URL

	err := client.SendText(context.Background(), "573105551234", "hola")
	require.NoError(t, err)

	assert.Equal(t, "/12345/messages", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "whatsapp", gotBody.MessagingProduct)
	assert.Equal(t, "text", gotBody.Type)
	assert.Equal(t, "573105551234", gotBody.To)
	assert.Equal(t, "hola", gotBody.Text.Body)
}

func TestSendTextSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	client := NewClient("12345", "secret-token")
	client.baseURL = srv.URL

	err := client.SendText(context.Background(), "573105551234", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNewClientPanicsWithoutCredentials(t *testing.T) {
	assert.Panics(t, func() { NewClient("", "token") })
	assert.Panics(t, func() { NewClient("12345", "") })
}
