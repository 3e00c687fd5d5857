package hydration_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/moodsip/internal/domain/auth"
	"github.com/yanqian/moodsip/internal/domain/hydration"
	"github.com/yanqian/moodsip/internal/infra/diary"
	apperrors "github.com/yanqian/moodsip/pkg/errors"
)

type fixedSettings struct{}

func (fixedSettings) Settings(context.Context, int64) (auth.Settings, error) {
	return auth.Settings{BaseGoal: 8, City: "London", Timezone: "UTC"}, nil
}

func TestServiceLogGlassCapHoldsUnderConcurrency(t *testing.T) {
	store := diary.NewMemoryHydrationStore()
	svc := hydration.NewService(hydration.Config{MaxGlassesPerDay: 3, DefaultTimezone: "UTC"},
		store, nil, fixedSettings{}, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.LogGlass(context.Background(), 1)
		}(i)
	}
	wg.Wait()

	rejected := 0
	for _, err := range errs {
		if err != nil {
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
			rejected++
		}
	}
	require.Equal(t, 7, rejected)

	today, err := svc.Today(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 3, today.Glasses)
}
