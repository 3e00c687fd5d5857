package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryArchiveCopiesData(t *testing.T) {
	a := NewMemoryArchive()
	data := []byte(`{"insights":[]}`)
	require.NoError(t, a.Put(context.Background(), "meal-insights/1/2024-07-10/x.json", data, "application/json"))
	data[0] = 'X'

	obj, ok := a.Get("meal-insights/1/2024-07-10/x.json")
	require.True(t, ok)
	require.Equal(t, `{"insights":[]}`, string(obj.Data))
	require.Equal(t, "application/json", obj.ContentType)
	require.Equal(t, []string{"meal-insights/1/2024-07-10/x.json"}, a.Keys())
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "acc.r2.cloudflarestorage.com", sanitizeEndpoint("https://acc.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
	require.Equal(t, "", sanitizeEndpoint(""))
}
