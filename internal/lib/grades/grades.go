// Package grades реализует чистую арифметику средневзвешенных оценок:
// подсчёт GPA/GWA по списку предметов и определение статуса Latin Honors.
// Пакет не зависит от хранилища и работает только с переданными данными.
package grades

import "github.com/renzmontano/grade-tracker/internal/models"

// Статусы Latin Honors. Лестница порогов инклюзивна с «лучшей» стороны:
// GWA ровно 1.20 — это ещё Summa Cum Laude.
const (
	SummaCumLaude = "Summa Cum Laude"
	MagnaCumLaude = "Magna Cum Laude"
	CumLaude      = "Cum Laude"
	NoHonors      = "No Latin Honors"
)

// Average возвращает средневзвешенную оценку Σ(grade×units)/Σ(units).
// Пустой список или нулевая сумма юнитов дают 0, чтобы избежать деления на ноль.
func Average(subjects []models.Subject) float64 {
	var totalWeighted, totalUnits float64
	for _, s := range subjects {
		totalWeighted += s.Grade * s.Units
		totalUnits += s.Units
	}
	if totalUnits == 0 {
		return 0
	}
	return totalWeighted / totalUnits
}

// TotalUnits возвращает сумму юнитов по списку предметов.
func TotalUnits(subjects []models.Subject) float64 {
	var total float64
	for _, s := range subjects {
		total += s.Units
	}
	return total
}

// HonorFor возвращает статус Latin Honors для накопительного GWA.
// Меньший балл лучше.
func HonorFor(gwa float64) string {
	switch {
	case gwa <= 1.20:
		return SummaCumLaude
	case gwa <= 1.45:
		return MagnaCumLaude
	case gwa <= 1.75:
		return CumLaude
	default:
		return NoHonors
	}
}
