package service

import (
	"context"
	"testing"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBillStore models the fiscal store with just ids: bills[i] holds
// the i-th committed bill's store id.
type stubBillStore struct {
	ids []int64
}

func (s *stubBillStore) CountAfter(_ context.Context, id int64) (int64, error) {
	var n int64
	for _, billID := range s.ids {
		if billID > id {
			n++
		}
	}
	return n, nil
}

func (s *stubBillStore) MaxID(context.Context) (int64, error) {
	var max int64
	for _, id := range s.ids {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (s *stubBillStore) CreateWithItems(_ context.Context, bill *entity.Bill, _ []entity.BillItem) (uint, error) {
	id := int64(len(s.ids) + 1)
	s.ids = append(s.ids, id)
	bill.ID = uint(id)
	return bill.ID, nil
}

func (s *stubBillStore) GetByID(context.Context, uint) (*entity.Bill, error) { return nil, nil }
func (s *stubBillStore) List(context.Context, int, int) ([]repository.BillSummary, int64, error) {
	return nil, 0, nil
}
func (s *stubBillStore) GetItems(context.Context, uint) ([]entity.BillItem, error) { return nil, nil }

type stubSettings struct {
	values map[string]string
}

func (s *stubSettings) Get(_ context.Context, key string) (string, error) {
	return s.values[key], nil
}

func (s *stubSettings) Set(_ context.Context, key, value string) error {
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	return nil
}

func newTestSequenceService(bills *stubBillStore, settings *stubSettings) *SequenceService {
	return NewSequenceService(bills, settings, zerolog.Nop())
}

func TestNextBillNumberStartsAtOne(t *testing.T) {
	s := newTestSequenceService(&stubBillStore{}, &stubSettings{})

	no, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "01", no)
}

func TestNextBillNumberCountsPastBaseline(t *testing.T) {
	bills := &stubBillStore{ids: []int64{1, 2, 3, 4, 5}}
	s := newTestSequenceService(bills, &stubSettings{})

	no, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "06", no)
}

func TestNextBillNumberPadsToTwoDigits(t *testing.T) {
	bills := &stubBillStore{}
	for i := int64(1); i <= 104; i++ {
		bills.ids = append(bills.ids, i)
	}
	s := newTestSequenceService(bills, &stubSettings{})

	no, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "105", no, "three digits once past 99, never truncated")
}

func TestResetSequenceRestartsNumbering(t *testing.T) {
	bills := &stubBillStore{ids: []int64{1, 2, 3}}
	settings := &stubSettings{}
	s := newTestSequenceService(bills, settings)

	require.NoError(t, s.ResetSequence(context.Background()))

	no, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "01", no)

	// Fiscal history is untouched; only the visible numbering moved.
	assert.Len(t, bills.ids, 3)
	assert.Equal(t, "3", settings.values[entity.SettingBillSequenceStartID])

	// Numbering continues from the new baseline as bills commit.
	_, err = bills.CreateWithItems(context.Background(), &entity.Bill{}, nil)
	require.NoError(t, err)
	no, err = s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "02", no)
}

func TestResetSequenceOnEmptyStore(t *testing.T) {
	settings := &stubSettings{}
	s := newTestSequenceService(&stubBillStore{}, settings)

	require.NoError(t, s.ResetSequence(context.Background()))
	assert.Equal(t, "0", settings.values[entity.SettingBillSequenceStartID])

	no, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "01", no)
}

func TestMalformedBaselineTreatedAsZero(t *testing.T) {
	bills := &stubBillStore{ids: []int64{1, 2}}
	settings := &stubSettings{values: map[string]string{
		entity.SettingBillSequenceStartID: "not-a-number",
	}}
	s := newTestSequenceService(bills, settings)

	no, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "03", no)
}

// The preview is a read, not a reservation: until a bill commits, every
// caller sees the same next number. This pins the behavior down so a
// future change to reserve-on-preview shows up as a test failure.
func TestNextBillNumberPreviewIsNotAReservation(t *testing.T) {
	bills := &stubBillStore{ids: []int64{1, 2}}
	s := newTestSequenceService(bills, &stubSettings{})

	first, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	second, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Only a commit consumes the number.
	_, err = bills.CreateWithItems(context.Background(), &entity.Bill{BillNo: first}, nil)
	require.NoError(t, err)
	next, err := s.NextBillNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "04", next)
}
