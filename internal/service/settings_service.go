package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/itsanla/sita-bi-sub000/internal/models"
	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
)

// Setting keys as stored by the administration UI. Values are JSON
// encoded except where noted; the parser degrades to defaults on any
// malformed value.
const (
	keyExaminerQuota     = "max_mahasiswa_uji_per_dosen"
	keyDefenseDuration   = "durasi_sidang_menit"
	keyBufferMinutes     = "jeda_sidang_menit"
	keyDayStart          = "jam_mulai_sidang"
	keyDayEnd            = "jam_selesai_sidang"
	keyFixedHolidays     = "hari_libur_tetap"
	keySpecialHolidays   = "tanggal_libur_khusus"
	keyRoomNames         = "ruangan_sidang"
	keyBreaks            = "waktu_istirahat"
	keyWeekdayOverrides  = "jadwal_hari_khusus"
	keyMaxActiveAdvisees = "max_pembimbing_aktif"
)

// BreakWindow suspends the slot walk when a slot ends exactly at the
// trigger time.
type BreakWindow struct {
	Trigger         string `json:"waktu"`
	DurationMinutes int    `json:"durasi_menit"`
}

// SpecialHoliday blocks a single calendar date.
type SpecialHoliday struct {
	Date  string `json:"tanggal"`
	Label string `json:"keterangan"`
}

// WeekdayOverride replaces the default operating hours on one weekday.
// Duration and buffer fall back to the defaults when absent; breaks do
// not, an override without breaks has none.
type WeekdayOverride struct {
	Weekday         string        `json:"hari"`
	DayStart        string        `json:"jam_mulai"`
	DayEnd          string        `json:"jam_selesai"`
	DurationMinutes *int          `json:"durasi_sidang_menit"`
	BufferMinutes   *int          `json:"jeda_sidang_menit"`
	Breaks          []BreakWindow `json:"waktu_istirahat"`
}

// ScheduleSettings is the fully-defaulted engine configuration
// assembled from the key/value settings store.
type ScheduleSettings struct {
	ExaminerQuota    int
	DurationMinutes  int
	BufferMinutes    int
	DayStart         string
	DayEnd           string
	FixedHolidays    []string
	SpecialHolidays  []SpecialHoliday
	RoomNames        []string
	Breaks           []BreakWindow
	WeekdayOverrides []WeekdayOverride
}

type settingsStore interface {
	ListAll(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (string, error)
}

type roomResolver interface {
	IDsByNames(ctx context.Context, names []string) ([]string, error)
}

// SettingsService loads the scheduling configuration. Absent or
// malformed settings resolve to defaults, never to an error.
type SettingsService struct {
	settings settingsStore
	rooms    roomResolver
	logger   *zap.Logger
}

// NewSettingsService constructs the settings service.
func NewSettingsService(settings settingsStore, rooms roomResolver, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{settings: settings, rooms: rooms, logger: logger}
}

// Load reads every setting row and assembles a fully-defaulted
// ScheduleSettings.
func (s *SettingsService) Load(ctx context.Context) (ScheduleSettings, error) {
	cfg := defaultScheduleSettings()

	rows, err := s.settings.ListAll(ctx)
	if err != nil {
		return cfg, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scheduling settings")
	}

	raw := make(map[string]string, len(rows))
	for _, row := range rows {
		raw[row.Key] = row.Value
	}

	cfg.ExaminerQuota = intSetting(raw[keyExaminerQuota], cfg.ExaminerQuota)
	cfg.DurationMinutes = intSetting(raw[keyDefenseDuration], cfg.DurationMinutes)
	cfg.BufferMinutes = intSetting(raw[keyBufferMinutes], cfg.BufferMinutes)
	cfg.DayStart = stringSetting(raw[keyDayStart], cfg.DayStart)
	cfg.DayEnd = stringSetting(raw[keyDayEnd], cfg.DayEnd)

	if v, ok := raw[keyFixedHolidays]; ok {
		var days []string
		if err := json.Unmarshal([]byte(v), &days); err == nil {
			cfg.FixedHolidays = days
		} else {
			s.logger.Warn("malformed fixed holidays setting, using default", zap.String("value", v))
		}
	}
	if v, ok := raw[keySpecialHolidays]; ok {
		var dates []SpecialHoliday
		if err := json.Unmarshal([]byte(v), &dates); err == nil {
			cfg.SpecialHolidays = dates
		}
	}
	if v, ok := raw[keyBreaks]; ok {
		var breaks []BreakWindow
		if err := json.Unmarshal([]byte(v), &breaks); err == nil {
			cfg.Breaks = breaks
		}
	}
	if v, ok := raw[keyWeekdayOverrides]; ok {
		var overrides []WeekdayOverride
		if err := json.Unmarshal([]byte(v), &overrides); err == nil {
			cfg.WeekdayOverrides = overrides
		}
	}
	cfg.RoomNames = stringListSetting(raw[keyRoomNames])

	return cfg, nil
}

// MaxActiveAdvisees reads the advisor workload ceiling, defaulting to 4.
func (s *SettingsService) MaxActiveAdvisees(ctx context.Context) (int, error) {
	raw, err := s.settings.Get(ctx, keyMaxActiveAdvisees)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load advisor ceiling")
	}
	return intSetting(raw, 4), nil
}

// GetByKey returns a single raw setting value, empty when absent.
func (s *SettingsService) GetByKey(ctx context.Context, key string) (string, error) {
	value, err := s.settings.Get(ctx, key)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load setting")
	}
	return value, nil
}

// ResolveRoomIDs maps configured room names to room ids in configured
// order. Names without a matching room are dropped silently.
func (s *SettingsService) ResolveRoomIDs(ctx context.Context, names []string) ([]string, error) {
	ids, err := s.rooms.IDsByNames(ctx, names)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve rooms")
	}
	if len(ids) < len(names) {
		s.logger.Warn("some configured rooms do not exist", zap.Int("configured", len(names)), zap.Int("resolved", len(ids)))
	}
	return ids, nil
}

func defaultScheduleSettings() ScheduleSettings {
	return ScheduleSettings{
		ExaminerQuota:   4,
		DurationMinutes: 90,
		BufferMinutes:   15,
		DayStart:        "08:00",
		DayEnd:          "15:00",
		FixedHolidays:   []string{"sabtu", "minggu"},
	}
}

// intSetting accepts a bare number, a JSON number, or a quoted number.
func intSetting(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	var quoted string
	if err := json.Unmarshal([]byte(raw), &quoted); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(quoted)); err == nil {
			return n
		}
	}
	return fallback
}

func stringSetting(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	var quoted string
	if err := json.Unmarshal([]byte(raw), &quoted); err == nil && quoted != "" {
		return quoted
	}
	return raw
}

// stringListSetting accepts a JSON array or a comma separated string.
func stringListSetting(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
		return out
	}
	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		raw = single
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
