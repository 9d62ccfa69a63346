// Package models содержит доменные структуры мест (points of interest),
// проходящих модерацию: заявка, статус и агрегированная статистика.
package models

import "time"

// PlaceStatus — статус заявки на публикацию места.
type PlaceStatus string

const (
	// StatusPending — заявка ожидает решения модератора.
	StatusPending PlaceStatus = "PENDING"
	// StatusApproved — заявка одобрена; статус терминальный.
	StatusApproved PlaceStatus = "APPROVED"
	// StatusRejected — заявка отклонена; статус терминальный.
	StatusRejected PlaceStatus = "REJECTED"
)

// Valid сообщает, является ли значение одним из известных статусов.
func (s PlaceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Place представляет заявку на публикацию места, созданную из мастера подачи.
type Place struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      string       `json:"category"`
	Description   string       `json:"description"`
	Address       string       `json:"address"`
	Phone         string       `json:"phone"`
	Website       string       `json:"website"`
	Hours         OpeningHours `json:"hours"`
	Photos        []string     `json:"photos"`
	SubmittedBy   string       `json:"submitted_by"`
	SubmittedDate time.Time    `json:"submitted_date"`
	Status        PlaceStatus  `json:"status"`
}

// OpeningHours — часы работы: будни, суббота и воскресенье раздельно.
type OpeningHours struct {
	WeekdayOpen   string `json:"weekday_open"`
	WeekdayClose  string `json:"weekday_close"`
	SaturdayOpen  string `json:"saturday_open"`
	SaturdayClose string `json:"saturday_close"`
	SundayOpen    string `json:"sunday_open"`
	SundayClose   string `json:"sunday_close"`
}

// ModerationStats — агрегированные счётчики заявок, пересчитываемые
// после каждой мутации статуса.
type ModerationStats struct {
	PendingCount  int `json:"pending_count"`
	ApprovedCount int `json:"approved_count"`
	RejectedCount int `json:"rejected_count"`
}
