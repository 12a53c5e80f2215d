// Package daterange реализует календарную арифметику для периодов бюджета.
//
// Правило переноса: при добавлении месяцев или лет число месяца сохраняется,
// а если в целевом месяце такого числа нет — берётся последний день месяца
// (31 января + 1 месяц = 29 февраля в високосном году, 28 - в обычном).
// time.AddDate здесь не подходит: он переполняет дату в следующий месяц,
// из-за чего соседние периоды начинают перекрываться.
package daterange

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/budget-tracker/internal/models"
)

// AddMonthsClamped добавляет months календарных месяцев к дате,
// сохраняя число месяца и ограничивая его последним днём целевого месяца.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	lastDay := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

// NextPeriod вычисляет границы следующего периода бюджета по дате окончания
// истекшего: новый период начинается на следующий день после oldEnd.
func NextPeriod(period string, oldEnd time.Time) (start, end time.Time, err error) {
	start = oldEnd.AddDate(0, 0, 1)
	switch period {
	case models.PeriodWeekly:
		end = start.AddDate(0, 0, 6)
	case models.PeriodMonthly:
		end = AddMonthsClamped(oldEnd, 1)
	case models.PeriodYearly:
		end = AddMonthsClamped(oldEnd, 12)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("daterange.NextPeriod: unknown period %q", period)
	}
	return start, end, nil
}

func daysInMonth(year int, month time.Month) int {
	// Нулевой день следующего месяца - это последний день текущего.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
