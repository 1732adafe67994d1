package conflictcache

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// MetricsRecorder учет попаданий в кэш
type MetricsRecorder interface {
	IncCache(result string)
}
