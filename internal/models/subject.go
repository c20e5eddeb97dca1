package models

import "time"

// Subject представляет предмет внутри семестра. Оценка хранится по шкале
// 1.00–5.00, где меньшее значение лучше; юниты всегда положительные.
type Subject struct {
	ID         int64     `json:"id"`
	SemesterID int64     `json:"semester_id"`
	Name       string    `json:"subject_name"`
	Grade      float64   `json:"grade"`
	Units      float64   `json:"units"`
	CreatedAt  time.Time `json:"created_at"`
}

// DummySubject используется для приёма данных из JSON-запроса
// при создании предмета, до валидации диапазонов оценки и юнитов.
type DummySubject struct {
	SemesterID int64   `json:"semester_id" validate:"required,gt=0"`          // Семестр, в который добавляется предмет
	Name       string  `json:"subject_name" validate:"required,max=255"`      // Название предмета
	Grade      float64 `json:"grade" validate:"required,gte=1.0,lte=5.0"`     // Оценка по шкале 1.00–5.00
	Units      float64 `json:"units" validate:"required,gt=0"`                // Количество юнитов (>0)
}

// DummySubjectUpdate используется для приёма данных при обновлении предмета.
// Все три изменяемых поля заменяются одним запросом.
type DummySubjectUpdate struct {
	Name  string  `json:"subject_name" validate:"required,max=255"`
	Grade float64 `json:"grade" validate:"required,gte=1.0,lte=5.0"`
	Units float64 `json:"units" validate:"required,gt=0"`
}
