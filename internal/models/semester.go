// Package models содержит доменные структуры, описывающие семестр и предметы,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Semester представляет семестр пользователя вместе с его предметами.
// Поле Subjects никогда не nil: семестр без предметов несёт пустой срез.
type Semester struct {
	ID        int64     `json:"id"`
	Name      string    `json:"semester_name"`
	CreatedAt time.Time `json:"created_at"`
	Subjects  []Subject `json:"subjects"`
}

// SemesterView дополняет семестр вычисленными агрегатами для выдачи наружу.
type SemesterView struct {
	Semester
	GPA        float64 `json:"gpa"`
	TotalUnits float64 `json:"total_units"`
}

// DummySemester используется для приёма данных из JSON-запроса
// при создании семестра.
type DummySemester struct {
	Name string `json:"semester_name" validate:"required,max=255"` // Название семестра
}
