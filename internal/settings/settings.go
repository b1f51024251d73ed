// Package settings stores per-user preferences in the document store.
package settings

import (
	"context"
	"strconv"
	"strings"

	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/logger"
	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/units"
	"github.com/julianstephens/wishlog/internal/utils"
)

// Keys lists the settings accepted by Set, in display order.
var Keys = []string{constants.SettingTimezone, constants.SettingDisplayUnit, constants.SettingHeatmapDays}

func Defaults() models.Settings {
	return models.Settings{
		Timezone:    constants.DefaultTimezone,
		DisplayUnit: constants.DefaultDisplayUnit,
		HeatmapDays: constants.DefaultHeatmapDays,
	}
}

func Validate(s models.Settings) error {
	if !utils.ValidateTimezone(s.Timezone) {
		return errors.Validation(constants.SettingTimezone, "unknown timezone %q", s.Timezone)
	}
	if _, err := units.ParseUnit(s.DisplayUnit); err != nil {
		return errors.Validation(constants.SettingDisplayUnit, "%v", err)
	}
	if s.HeatmapDays <= 0 {
		return errors.Validation(constants.SettingHeatmapDays, "must be a positive number of days")
	}
	return nil
}

type Service struct {
	db storage.Provider
}

func NewService(db storage.Provider) *Service {
	return &Service{db: db}
}

func (s *Service) find(ctx context.Context, userID string) (*storage.Document, error) {
	docs, err := s.db.Query(ctx, constants.CollectionSettings, storage.Where("userId", userID))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// Get returns the user's settings, with defaults for anything unset.
func (s *Service) Get(ctx context.Context, userID string) (models.Settings, error) {
	settings := Defaults()
	doc, err := s.find(ctx, userID)
	if err != nil || doc == nil {
		return settings, err
	}

	var stored models.Settings
	if err := storage.DecodeFields(doc.Fields, &stored); err != nil {
		return settings, err
	}
	if stored.Timezone != "" {
		settings.Timezone = stored.Timezone
	}
	if stored.DisplayUnit != "" {
		settings.DisplayUnit = stored.DisplayUnit
	}
	if stored.HeatmapDays > 0 {
		settings.HeatmapDays = stored.HeatmapDays
	}
	return settings, nil
}

// Save validates and stores the user's settings.
func (s *Service) Save(ctx context.Context, userID string, settings models.Settings) error {
	if err := Validate(settings); err != nil {
		return err
	}
	fields, err := storage.EncodeFields(settings)
	if err != nil {
		return err
	}
	fields["userId"] = userID

	doc, err := s.find(ctx, userID)
	if err != nil {
		return err
	}
	if doc == nil {
		_, err = s.db.Insert(ctx, constants.CollectionSettings, fields)
	} else {
		err = s.db.Update(ctx, constants.CollectionSettings, doc.ID, fields)
	}
	if err != nil {
		return err
	}
	logger.Debug("Saved settings", "user", userID)
	return nil
}

// Set changes one setting by key and returns the result.
func (s *Service) Set(ctx context.Context, userID, key, value string) (models.Settings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return settings, err
	}

	value = strings.TrimSpace(value)
	switch key {
	case constants.SettingTimezone:
		settings.Timezone = value
	case constants.SettingDisplayUnit:
		unit, err := units.ParseUnit(value)
		if err != nil {
			return settings, errors.Validation(key, "%v", err)
		}
		settings.DisplayUnit = unit.String()
	case constants.SettingHeatmapDays:
		days, err := strconv.Atoi(value)
		if err != nil {
			return settings, errors.Validation(key, "%q is not a whole number", value)
		}
		settings.HeatmapDays = days
	default:
		return settings, errors.Validation("key", "unknown setting %q (expected one of %s)", key, strings.Join(Keys, ", "))
	}

	if err := s.Save(ctx, userID, settings); err != nil {
		return settings, err
	}
	return settings, nil
}
