package get_available_slots

import (
	"sort"
	"time"

	"github.com/remedyhq/RMT-SchedulingService/internal/domain"
	"github.com/remedyhq/RMT-SchedulingService/pkg/types"
)

// generateCandidates генерирует времена начала слотов внутри открытых интервалов.
// Кандидат допустим, только если [start, start+duration) целиком помещается
// в ОДИН открытый интервал — кандидат не может пересекать разрыв между
// интервалами (например, обеденный перерыв).
func generateCandidates(open []domain.Interval, durationMinutes, stepMinutes int) ([]types.TimeString, error) {
	if stepMinutes <= 0 {
		stepMinutes = durationMinutes
	}

	candidates := make([]types.TimeString, 0)

	for _, interval := range open {
		current := interval.Start
		for current.IsBefore(interval.End) {
			slotEnd, err := current.AddMinutes(durationMinutes)
			if err != nil {
				// Слот выходит за границу суток
				break
			}
			if slotEnd.IsAfter(interval.End) {
				break
			}

			candidates = append(candidates, current)

			current, err = current.AddMinutes(stepMinutes)
			if err != nil {
				break
			}
		}
	}

	return candidates, nil
}

// mergeCandidates объединяет кандидатов нескольких терапевтов в итоговый
// список слотов. Слоты с одинаковым временем начала дедуплицируются:
// остаётся одна запись, remaining = число терапевтов, свободных в это время.
func mergeCandidates(perTherapist map[int64][]types.TimeString, durationMinutes, total int) []Slot {
	counts := make(map[types.TimeString]int)

	for _, candidates := range perTherapist {
		// Защита от повторов внутри одного терапевта
		seen := make(map[types.TimeString]bool, len(candidates))
		for _, c := range candidates {
			if seen[c] {
				continue
			}
			seen[c] = true
			counts[c]++
		}
	}

	slots := make([]Slot, 0, len(counts))
	for start, remaining := range counts {
		slots = append(slots, Slot{
			StartTime:       start,
			DurationMinutes: durationMinutes,
			Remaining:       remaining,
			Total:           total,
		})
	}

	sort.Slice(slots, func(a, b int) bool {
		return slots[a].StartTime.IsBefore(slots[b].StartTime)
	})

	return slots
}

// filterByNotice отбрасывает слоты на сегодня, начинающиеся раньше,
// чем now + minNoticeMinutes. Для будущих дат фильтрация не нужна.
func filterByNotice(slots []Slot, requestDate, now time.Time, minNoticeMinutes int) []Slot {
	if !isSameDay(requestDate, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)
	minAllowed, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимально допустимое время за пределами суток - на сегодня слотов нет
		return []Slot{}
	}

	filtered := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(minAllowed) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
