package service

import (
	"errors"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/notify"
	"github.com/shefospecial/victoriasystem/internal/repository"
)

type SettingsService interface {
	List() ([]model.Setting, error)
	Get(key string) (*model.Setting, error)
	Set(key, value, description string) (*model.Setting, error)
	SetBulk(values map[string]string) ([]model.Setting, error)
	Delete(key string) error
	TestTelegram() error
}

type settingsService struct {
	settingRepo repository.SettingRepository
	telegram    *notify.Telegram
}

func NewSettingsService(settingRepo repository.SettingRepository, telegram *notify.Telegram) SettingsService {
	return &settingsService{settingRepo: settingRepo, telegram: telegram}
}

func (s *settingsService) List() ([]model.Setting, error) {
	return s.settingRepo.FindAll()
}

func (s *settingsService) Get(key string) (*model.Setting, error) {
	return s.settingRepo.FindByKey(key)
}

func (s *settingsService) Set(key, value, description string) (*model.Setting, error) {
	if key == "" {
		return nil, errors.New("setting key is required")
	}
	return s.settingRepo.Upsert(key, value, description)
}

// SetBulk upserts several settings at once, the way the settings page saves.
func (s *settingsService) SetBulk(values map[string]string) ([]model.Setting, error) {
	settings := make([]model.Setting, 0, len(values))
	for key, value := range values {
		if key == "" {
			return nil, errors.New("setting key is required")
		}
		setting, err := s.settingRepo.Upsert(key, value, "")
		if err != nil {
			return nil, err
		}
		settings = append(settings, *setting)
	}
	return settings, nil
}

func (s *settingsService) Delete(key string) error {
	setting, err := s.settingRepo.FindByKey(key)
	if err != nil {
		return errors.New("setting not found")
	}
	return s.settingRepo.Delete(setting)
}

func (s *settingsService) TestTelegram() error {
	if !s.telegram.SendTest() {
		return errors.New("telegram test failed, check bot token and chat id")
	}
	return nil
}
