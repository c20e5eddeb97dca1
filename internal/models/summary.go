package models

// Summary содержит итоговые показатели успеваемости пользователя:
// накопительный средневзвешенный балл, сумму юнитов и статус Latin Honors.
type Summary struct {
	GWA        float64 `json:"gwa"`
	TotalUnits float64 `json:"total_units"`
	Honor      string  `json:"latin_honor"`
}
