package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsanla/sita-bi-sub000/internal/models"
)

type settingsStoreStub struct {
	rows map[string]string
	err  error
}

func (s *settingsStoreStub) ListAll(ctx context.Context) ([]models.Setting, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Setting, 0, len(s.rows))
	for key, value := range s.rows {
		out = append(out, models.Setting{Key: key, Value: value})
	}
	return out, nil
}

func (s *settingsStoreStub) Get(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.rows[key], nil
}

type roomResolverStub struct {
	byName map[string]string
}

func (s *roomResolverStub) IDsByNames(ctx context.Context, names []string) ([]string, error) {
	var ids []string
	for _, name := range names {
		if id, ok := s.byName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func TestSettingsServiceDefaults(t *testing.T) {
	svc := NewSettingsService(&settingsStoreStub{}, &roomResolverStub{}, nil)
	cfg, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.ExaminerQuota)
	assert.Equal(t, 90, cfg.DurationMinutes)
	assert.Equal(t, 15, cfg.BufferMinutes)
	assert.Equal(t, "08:00", cfg.DayStart)
	assert.Equal(t, "15:00", cfg.DayEnd)
	assert.Equal(t, []string{"sabtu", "minggu"}, cfg.FixedHolidays)
	assert.Empty(t, cfg.RoomNames)
	assert.Empty(t, cfg.Breaks)
}

func TestSettingsServiceStoredValues(t *testing.T) {
	store := &settingsStoreStub{rows: map[string]string{
		"max_mahasiswa_uji_per_dosen": "6",
		"durasi_sidang_menit":         "60",
		"jeda_sidang_menit":           "10",
		"jam_mulai_sidang":            `"09:00"`,
		"jam_selesai_sidang":          "16:00",
		"hari_libur_tetap":            `["jumat","sabtu","minggu"]`,
		"tanggal_libur_khusus":        `[{"tanggal":"2026-09-17","keterangan":"dies natalis"}]`,
		"ruangan_sidang":              `["Lab 1","Lab 2"]`,
		"waktu_istirahat":             `[{"waktu":"12:00","durasi_menit":60}]`,
		"jadwal_hari_khusus":          `[{"hari":"jumat","jam_mulai":"08:00","jam_selesai":"11:00"}]`,
	}}
	svc := NewSettingsService(store, &roomResolverStub{}, nil)
	cfg, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.ExaminerQuota)
	assert.Equal(t, 60, cfg.DurationMinutes)
	assert.Equal(t, 10, cfg.BufferMinutes)
	assert.Equal(t, "09:00", cfg.DayStart)
	assert.Equal(t, "16:00", cfg.DayEnd)
	assert.Equal(t, []string{"jumat", "sabtu", "minggu"}, cfg.FixedHolidays)
	require.Len(t, cfg.SpecialHolidays, 1)
	assert.Equal(t, "2026-09-17", cfg.SpecialHolidays[0].Date)
	assert.Equal(t, []string{"Lab 1", "Lab 2"}, cfg.RoomNames)
	require.Len(t, cfg.Breaks, 1)
	assert.Equal(t, "12:00", cfg.Breaks[0].Trigger)
	assert.Equal(t, 60, cfg.Breaks[0].DurationMinutes)
	require.Len(t, cfg.WeekdayOverrides, 1)
	assert.Equal(t, "jumat", cfg.WeekdayOverrides[0].Weekday)
}

func TestSettingsServiceCommaSeparatedRooms(t *testing.T) {
	store := &settingsStoreStub{rows: map[string]string{
		"ruangan_sidang": "Lab 1, Lab 2 ,Lab 3",
	}}
	svc := NewSettingsService(store, &roomResolverStub{}, nil)
	cfg, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Lab 1", "Lab 2", "Lab 3"}, cfg.RoomNames)
}

func TestSettingsServiceMalformedValuesDegrade(t *testing.T) {
	store := &settingsStoreStub{rows: map[string]string{
		"max_mahasiswa_uji_per_dosen": "lots",
		"hari_libur_tetap":            "{broken",
		"waktu_istirahat":             "nope",
	}}
	svc := NewSettingsService(store, &roomResolverStub{}, nil)
	cfg, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ExaminerQuota)
	assert.Equal(t, []string{"sabtu", "minggu"}, cfg.FixedHolidays)
	assert.Empty(t, cfg.Breaks)
}

func TestSettingsServiceMaxActiveAdvisees(t *testing.T) {
	svc := NewSettingsService(&settingsStoreStub{}, &roomResolverStub{}, nil)
	v, err := svc.MaxActiveAdvisees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	svc = NewSettingsService(&settingsStoreStub{rows: map[string]string{"max_pembimbing_aktif": "7"}}, &roomResolverStub{}, nil)
	v, err = svc.MaxActiveAdvisees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestSettingsServiceResolveRoomIDsDropsUnknown(t *testing.T) {
	rooms := &roomResolverStub{byName: map[string]string{"Lab 1": "r1", "Lab 3": "r3"}}
	svc := NewSettingsService(&settingsStoreStub{}, rooms, nil)
	ids, err := svc.ResolveRoomIDs(context.Background(), []string{"Lab 1", "Lab 2", "Lab 3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r3"}, ids)
}
