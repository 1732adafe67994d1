package get_calendar_conflicts

import (
	"context"

	getCalendarConflicts "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/get_calendar_conflicts"
)

type GetCalendarConflictsUseCase interface {
	Execute(ctx context.Context, req *getCalendarConflicts.Request) (*getCalendarConflicts.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
