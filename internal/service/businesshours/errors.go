package businesshours

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("businesshours: invalid input data")

	// ErrDuplicateWeekday возвращается, когда день недели передан в обновлении дважды
	ErrDuplicateWeekday = errors.New("businesshours: duplicate day of week")

	// ErrSpecialHoursNotFound возвращается, когда особые часы не найдены
	ErrSpecialHoursNotFound = errors.New("businesshours: special hours not found")

	// ErrSpecialHoursExists возвращается, когда на дату уже заданы особые часы
	ErrSpecialHoursExists = errors.New("businesshours: special hours for this date already exist")

	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = errors.New("businesshours: holiday not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("businesshours: internal error")
)
