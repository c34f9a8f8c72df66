package mock

import (
	"context"

	"github.com/fwojciec/ramprice"
)

var _ ramprice.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of ramprice.RecordService.
type RecordService struct {
	CreateRecordsFn func(ctx context.Context, records []ramprice.PriceRecord) (int, error)
	FindRecordsFn   func(ctx context.Context, filter ramprice.RecordFilter) ([]ramprice.PriceRecord, error)
}

func (s *RecordService) CreateRecords(ctx context.Context, records []ramprice.PriceRecord) (int, error) {
	return s.CreateRecordsFn(ctx, records)
}

func (s *RecordService) FindRecords(ctx context.Context, filter ramprice.RecordFilter) ([]ramprice.PriceRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}
