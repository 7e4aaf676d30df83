package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	cdhttp "github.com/fwojciec/contactdir/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesClient_Download(t *testing.T) {
	t.Parallel()

	t.Run("maps Latin spellings to Hebrew", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": true, "result": {"records": [
				{"_id": 1, "שם פרטי": "דנה", "שם_לועזי": "Dana"},
				{"_id": 2, "name_he": " יוסי ", "name_en": "Yossi"},
				{"_id": 3, "שם": "מיכל", "eng": ""},
				{"_id": 4, "heb": 17, "eng": "Noa"}
			]}}`))
		}))
		defer srv.Close()

		client := cdhttp.NewNamesClient(srv.Client())
		client.URL = srv.URL

		names, err := client.Download(context.Background())

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"dana": "דנה", "yossi": "יוסי"}, names)
	})

	t.Run("returns error on bad status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := cdhttp.NewNamesClient(srv.Client())
		client.URL = srv.URL

		_, err := client.Download(context.Background())

		assert.ErrorContains(t, err, "502")
	})

	t.Run("returns error on malformed JSON", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer srv.Close()

		client := cdhttp.NewNamesClient(srv.Client())
		client.URL = srv.URL

		_, err := client.Download(context.Background())

		assert.ErrorContains(t, err, "decoding names dataset")
	})
}
