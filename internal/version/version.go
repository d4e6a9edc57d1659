package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает информацию о сборке, заполняемую через -ldflags.
func Info() (v, c, d string) { return version, commit, date }

// String отдаёт информацию о сборке одной строкой для логов.
func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
