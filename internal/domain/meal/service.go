package meal

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/moodsip/pkg/errors"
	"github.com/yanqian/moodsip/pkg/util"
)

// Service manages the meal diary.
type Service interface {
	Log(ctx context.Context, userID int64, req LogRequest) (Entry, error)
	List(ctx context.Context, userID int64, date string) ([]Entry, error)
	Delete(ctx context.Context, userID int64, id string) error
}

type service struct {
	cfg      Config
	store    Store
	settings SettingsProvider
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewService wires up the meal domain.
func NewService(cfg Config, store Store, settings SettingsProvider, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		store:    store,
		settings: settings,
		logger:   logger.With("component", "meal.service"),
		now:      time.Now,
		newID:    uuid.New,
	}
}

func (s *service) Log(ctx context.Context, userID int64, req LogRequest) (Entry, error) {
	local, err := s.localNow(ctx, userID)
	if err != nil {
		return Entry{}, err
	}
	entry, err := s.buildEntry(req, local)
	if err != nil {
		return Entry{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	if err := s.store.Save(ctx, userID, entry); err != nil {
		return Entry{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save meal", err)
	}
	s.logger.Info("meal logged", "user_id", userID, "meal_id", entry.ID, "date", entry.Date, "type", entry.MealType)
	return entry, nil
}

func (s *service) List(ctx context.Context, userID int64, date string) ([]Entry, error) {
	key := strings.TrimSpace(date)
	if key == "" {
		local, err := s.localNow(ctx, userID)
		if err != nil {
			return nil, err
		}
		key = util.DateKey(local)
	} else {
		parsed, err := util.ParseDate(key)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
		}
		key = util.DateKey(parsed)
	}
	entries, err := s.store.ListByDate(ctx, userID, key)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list meals", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *service) Delete(ctx context.Context, userID int64, id string) error {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "meal id must be a UUID", err)
	}
	found, err := s.store.Delete(ctx, userID, parsed)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete meal", err)
	}
	if !found {
		return apperrors.Wrap(apperrors.CodeNotFound, "meal not found", nil)
	}
	s.logger.Info("meal deleted", "user_id", userID, "meal_id", parsed)
	return nil
}

func (s *service) buildEntry(req LogRequest, local time.Time) (Entry, error) {
	mealType, err := parseType(req.MealType)
	if err != nil {
		return Entry{}, err
	}
	category, err := parseCategory(req.FoodCategory)
	if err != nil {
		return Entry{}, err
	}
	name, err := normalizeName(req.MealName)
	if err != nil {
		return Entry{}, err
	}
	if err := validateRatings(req); err != nil {
		return Entry{}, err
	}

	date := util.DateKey(local)
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := util.ParseDate(req.Date)
		if err != nil {
			return Entry{}, err
		}
		date = util.DateKey(parsed)
		if date > util.DateKey(local) {
			return Entry{}, errFutureDate
		}
	}
	clock := local.Format(TimeLayout)
	if strings.TrimSpace(req.Time) != "" {
		clock, err = normalizeTime(req.Time)
		if err != nil {
			return Entry{}, err
		}
	}

	return Entry{
		ID:           s.newID(),
		Date:         date,
		Time:         clock,
		MealType:     mealType,
		MealName:     name,
		FoodCategory: category,
		MoodBefore:   req.MoodBefore,
		MoodAfter:    req.MoodAfter,
		EnergyBefore: req.EnergyBefore,
		EnergyAfter:  req.EnergyAfter,
		CreatedAt:    s.now().UTC(),
	}, nil
}

func (s *service) localNow(ctx context.Context, userID int64) (time.Time, error) {
	fallback := util.LoadLocation(s.cfg.DefaultTimezone, time.UTC)
	if s.settings == nil {
		return s.now().In(fallback), nil
	}
	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	return s.now().In(util.LoadLocation(settings.Timezone, fallback)), nil
}
