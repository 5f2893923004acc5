package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// SequenceService computes display bill numbers from a persisted baseline.
// Resetting advances the baseline to the current maximum bill id, which
// restarts the visible numbering without deleting any fiscal history.
type SequenceService struct {
	billRepo     repository.BillRepository
	settingsRepo repository.SettingsRepository
	logger       zerolog.Logger
}

// NewSequenceService creates a new sequence service
func NewSequenceService(
	billRepo repository.BillRepository,
	settingsRepo repository.SettingsRepository,
	logger zerolog.Logger,
) *SequenceService {
	return &SequenceService{
		billRepo:     billRepo,
		settingsRepo: settingsRepo,
		logger:       logger.With().Str("component", "sequence").Logger(),
	}
}

// NextBillNumber previews the next display number: bills past the baseline
// plus one, zero-padded to at least two digits.
//
// This is a read, not a reservation. The number is only consumed when the
// bill commits, so two overlapping checkouts can preview the same number
// and both commit under it (with distinct store ids). That matches the
// recorded behavior of the till; see DESIGN.md before changing it.
func (s *SequenceService) NextBillNumber(ctx context.Context) (string, error) {
	offset, err := s.currentOffset(ctx)
	if err != nil {
		return "", err
	}

	count, err := s.billRepo.CountAfter(ctx, offset)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%02d", count+1), nil
}

// ResetSequence moves the baseline to the current maximum bill id so the
// next bill displays as "01". With no bills the baseline becomes 0 and
// numbering is unaffected. The baseline never moves backwards.
func (s *SequenceService) ResetSequence(ctx context.Context) error {
	maxID, err := s.billRepo.MaxID(ctx)
	if err != nil {
		return err
	}

	if err := s.settingsRepo.Set(ctx, entity.SettingBillSequenceStartID, strconv.FormatInt(maxID, 10)); err != nil {
		return err
	}

	s.logger.Info().Int64("baseline", maxID).Msg("bill sequence reset")
	return nil
}

// currentOffset reads the persisted baseline. An absent or malformed
// setting means offset 0, never an error.
func (s *SequenceService) currentOffset(ctx context.Context) (int64, error) {
	raw, err := s.settingsRepo.Get(ctx, entity.SettingBillSequenceStartID)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	offset, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn().Str("value", raw).Msg("ignoring malformed sequence baseline")
		return 0, nil
	}
	return offset, nil
}
