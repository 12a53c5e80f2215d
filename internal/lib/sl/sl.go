// Package sl содержит вспомогательные функции для логгера slog,
// используемые сервисами и обработчиками трекера бюджетов.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки,
// чтобы ошибки во всех слоях приложения логировались единообразно.
//
// Пример:
//
//	log.Error("failed to create budget", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
