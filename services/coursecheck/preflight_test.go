package coursecheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreflightFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("<html><head><title>Course Listing</title></head></html>"))
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	tasks := []Task{
		{Category: "PLP_PAGES", URL: server.URL + "/ok"},
		{Category: "PLP_PAGES", URL: server.URL + "/gone"},
		{Category: "PLP_PAGES", URL: server.URL + "/broken"},
		{Category: "HOME", URL: "http://127.0.0.1:1/unreachable"},
	}

	got := NewPreflight().Filter(context.Background(), tasks)
	require.Equal(t, []Task{{Category: "PLP_PAGES", URL: server.URL + "/ok"}}, got)
}

func TestPageTitle(t *testing.T) {
	body := []byte("<html><head><title>\n  ALLEN:   Course Listing\n</title></head></html>")
	require.Equal(t, "ALLEN: Course Listing", pageTitle(body))
	require.Equal(t, "", pageTitle([]byte("not html at all")))
}
