package schedule

import "errors"

var (
	// ErrSpecialHoursNotFound возвращается, когда особые часы работы не найдены
	ErrSpecialHoursNotFound = errors.New("schedule.repository: special hours not found")

	// ErrSpecialHoursExists возвращается при попытке создать вторые особые часы на ту же дату
	ErrSpecialHoursExists = errors.New("schedule.repository: special hours for this date already exist")

	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = errors.New("schedule.repository: holiday not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
