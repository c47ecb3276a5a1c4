package get_available_slots

import (
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// enumerateSlots возвращает слоты каталога на день с учётом
// минимального времени до записи
// На выходной день каталог пуст; для будущих дат каталог фиксирован
func enumerateSlots(
	policy domain.SchedulePolicy,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	allSlots := policy.SlotsForDay(requestDate)

	// Если дата запроса НЕ сегодня - возвращаем весь каталог
	if !domain.SameDay(requestDate, now) {
		return allSlots, nil
	}

	// Для сегодняшней даты отбрасываем слоты, нарушающие minBookingNoticeMinutes
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(policy.MinBookingNoticeMinutes)
	if err != nil {
		return nil, err
	}

	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// calculateAvailableSpots вычисляет количество свободных мест для каждого слота
func calculateAvailableSpots(
	slots []types.TimeString,
	policy domain.SchedulePolicy,
	consultations []*domain.Consultation,
	busy []calendarservice.BusyInterval,
) []Slot {
	result := make([]Slot, len(slots))

	for i, slotStart := range slots {
		conflicts := countSlotConflicts(slotStart, policy.MeetingDurationMinutes, consultations, busy)

		availableSpots := policy.MaxConcurrentMeetings - conflicts
		if availableSpots < 0 {
			availableSpots = 0
		}

		result[i] = Slot{
			StartTime:       slotStart,
			DurationMinutes: policy.MeetingDurationMinutes,
			AvailableSpots:  availableSpots,
			TotalSpots:      policy.MaxConcurrentMeetings,
		}
	}

	return result
}

// countSlotConflicts подсчитывает пересечения слота с активными консультациями
// и занятыми интервалами календаря организатора
// Пересечение есть только если интервалы действительно накладываются друг на друга
// Если встреча заканчивается ровно там, где начинается слот (или наоборот) - это НЕ пересечение
//
// Примеры:
// - Слот 14:00-15:00, встреча 14:30-15:30 → ЕСТЬ пересечение (14:30-15:00)
// - Слот 14:00-15:00, встреча 13:00-14:00 → НЕТ пересечения (граничат)
// - Слот 14:00-15:00, встреча 15:00-16:00 → НЕТ пересечения (граничат)
func countSlotConflicts(
	slotStart types.TimeString,
	durationMinutes int,
	consultations []*domain.Consultation,
	busy []calendarservice.BusyInterval,
) int {
	slotEnd, err := slotStart.AddMinutes(durationMinutes)
	if err != nil {
		// Если не можем вычислить конец слота, считаем что пересечений нет
		return 0
	}

	count := 0

	for _, c := range consultations {
		// Пропускаем неактивные консультации
		if !c.IsActive() {
			continue
		}

		cStart := c.StartTime
		cEnd, err := c.StartTime.AddMinutes(c.DurationMinutes)
		if err != nil {
			// Если не можем вычислить конец встречи, пропускаем
			continue
		}

		// Используем строгие неравенства (IsBefore, IsAfter),
		// чтобы граничные случаи не считались пересечением
		if cStart.IsBefore(slotEnd) && cEnd.IsAfter(slotStart) {
			count++
		}
	}

	for _, interval := range busy {
		if interval.Start.IsBefore(slotEnd) && interval.End.IsAfter(slotStart) {
			count++
		}
	}

	return count
}
