package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchReturnsFirstFive(t *testing.T) {
	var gotQuery, gotFormat, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotUA = r.Header.Get("User-Agent")
		var items []string
		for i := 0; i < 8; i++ {
			items = append(items, fmt.Sprintf(`{"lat":"-34.%d","lon":"-58.%d","display_name":"Place %d"}`, i, i, i))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[" + strings.Join(items, ",") + "]"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "superapp-test", time.Second)
	places, err := c.Search(context.Background(), "Av. Corrientes 1234")
	require.NoError(t, err)

	assert.Equal(t, "Av. Corrientes 1234", gotQuery)
	assert.Equal(t, "json", gotFormat)
	assert.Equal(t, "superapp-test", gotUA)
	require.Len(t, places, MaxResults)
	assert.Equal(t, "Place 0", places[0].DisplayName)
	assert.InDelta(t, -34.0, places[0].Lat, 1e-9)

	loc := places[1].Location()
	assert.Equal(t, "Place 1", loc.Address)
	assert.InDelta(t, -58.1, loc.Lng, 1e-9)
}

func TestShortQueryMakesNoRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	places, err := NewClient(srv.URL, "", time.Second).Search(context.Background(), " abc ")
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestSearchSkipsUnparseableCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"x","lon":"1","display_name":"bad"},{"lat":"1.5","lon":"2.5","display_name":"good"}]`))
	}))
	defer srv.Close()

	places, err := NewClient(srv.URL, "", time.Second).Search(context.Background(), "good place")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "good", places[0].DisplayName)
}

func TestSearchReportsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Search(context.Background(), "somewhere")
	assert.Error(t, err)
}
