package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// SalonSeed начальное расписание салона из salon.yaml
type SalonSeed struct {
	Weekly   []WeeklyHoursSeed `yaml:"weekly"`
	Holidays []HolidaySeed     `yaml:"holidays"`
}

// WeeklyHoursSeed часы работы одного дня недели (0=воскресенье .. 6=суббота)
type WeeklyHoursSeed struct {
	Day        int    `yaml:"day"`
	Closed     bool   `yaml:"closed"`
	Open       string `yaml:"open"`                  // "10:00"
	Close      string `yaml:"close"`                 // "20:00"
	BreakStart string `yaml:"break_start,omitempty"` // "13:00"
	BreakEnd   string `yaml:"break_end,omitempty"`   // "14:00"
}

// HolidaySeed праздник; по умолчанию салон в этот день закрыт
type HolidaySeed struct {
	Date      string `yaml:"date"` // "2025-01-01"
	Name      string `yaml:"name"`
	Recurring bool   `yaml:"recurring"`
	Open      bool   `yaml:"open"` // true - день отмечается, но салон работает
}

// LoadSalonSeed читает и валидирует salon.yaml
func LoadSalonSeed(path string) (*SalonSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read salon seed: %v", ErrLoadConfig, err)
	}

	var seed SalonSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%w: parse salon seed: %v", ErrLoadConfig, err)
	}

	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Validate проверяет расписание так же строго, как административный API
func (s *SalonSeed) Validate() error {
	if _, err := s.RegularHours(); err != nil {
		return err
	}
	if _, err := s.HolidayList(); err != nil {
		return err
	}
	return nil
}

// RegularHours конвертирует недельное расписание в доменные записи
func (s *SalonSeed) RegularHours() ([]domain.RegularHours, error) {
	seen := make(map[int]bool, len(s.Weekly))
	result := make([]domain.RegularHours, 0, len(s.Weekly))

	for i, w := range s.Weekly {
		if seen[w.Day] {
			return nil, fmt.Errorf("%w: weekly[%d]: duplicate day %d", ErrInvalidConfig, i, w.Day)
		}
		seen[w.Day] = true

		h := domain.RegularHours{
			DayOfWeek:  w.Day,
			IsOpen:     !w.Closed,
			OpenTime:   optionalTime(w.Open),
			CloseTime:  optionalTime(w.Close),
			BreakStart: optionalTime(w.BreakStart),
			BreakEnd:   optionalTime(w.BreakEnd),
		}
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("%w: weekly[%d]: %v", ErrInvalidConfig, i, err)
		}
		result = append(result, h)
	}
	return result, nil
}

// HolidayList конвертирует праздники в доменные записи
func (s *SalonSeed) HolidayList() ([]domain.Holiday, error) {
	result := make([]domain.Holiday, 0, len(s.Holidays))
	for i, h := range s.Holidays {
		date, err := types.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: holidays[%d]: %v", ErrInvalidConfig, i, err)
		}
		holiday := domain.Holiday{
			Date:        date,
			Name:        h.Name,
			IsRecurring: h.Recurring,
			IsClosed:    !h.Open,
		}
		if err := holiday.Validate(); err != nil {
			return nil, fmt.Errorf("%w: holidays[%d]: %v", ErrInvalidConfig, i, err)
		}
		result = append(result, holiday)
	}
	return result, nil
}

func optionalTime(s string) *types.TimeString {
	if s == "" {
		return nil
	}
	t := types.TimeString(s)
	return &t
}
