package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

func TestTemperaturePicksConfiguredHour(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forecast", r.URL.Path)
		require.Equal(t, "Singapore", r.URL.Query().Get("q"))
		require.Equal(t, "secret", r.URL.Query().Get("appid"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"list":[
			{"dt_txt":"2024-07-10 12:00:00","main":{"temp":31.2}},
			{"dt_txt":"2024-07-10 15:00:00","main":{"temp":34.5}},
			{"dt_txt":"2024-07-11 15:00:00","main":{"temp":29.0}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", "", 0)
	temp, err := client.Temperature(context.Background(), "Singapore")
	require.NoError(t, err)
	require.InDelta(t, 34.5, temp, 0.001)
}

func TestTemperatureErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Nowhere" {
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"list":[{"dt_txt":"2024-07-10 12:00:00","main":{"temp":20}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "15:00:00", 0)

	_, err := client.Temperature(context.Background(), "Nowhere")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeather))
	require.Contains(t, err.Error(), "status=404")

	_, err = client.Temperature(context.Background(), "Oslo")
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeather))

	_, err = client.Temperature(context.Background(), " ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeWeather))
}
