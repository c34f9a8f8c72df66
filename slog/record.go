package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ramprice"
)

// Ensure LoggingRecordService implements ramprice.RecordService.
var _ ramprice.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with debug logging.
type LoggingRecordService struct {
	next   ramprice.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next ramprice.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// CreateRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) CreateRecords(ctx context.Context, records []ramprice.PriceRecord) (added int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("create records",
			"records", len(records),
			"added", added,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecords(ctx, records)
}

// FindRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter ramprice.RecordFilter) (records []ramprice.PriceRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}
