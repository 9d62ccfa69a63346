// Package models содержит структуру черновика места — состояние
// трёхшагового мастера подачи, хранящееся на сервере между запросами.
package models

// MaxDraftPhotos — максимальное количество фотографий в заявке.
// Попытка добавить больше молча усекается до оставшихся слотов.
const MaxDraftPhotos = 6

// PlaceDraft — черновик заявки на место. Шаг 1 — основные данные и фото,
// шаг 2 — контакты и часы работы, шаг 3 — просмотр перед отправкой.
type PlaceDraft struct {
	Step        int          `json:"step"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Photos      []string     `json:"photos"`
	Address     string       `json:"address"`
	Phone       string       `json:"phone"`
	Website     string       `json:"website"`
	Hours       OpeningHours `json:"hours"`
}

// DummyDraftStep1 используется для приёма данных первого шага из JSON-запроса.
type DummyDraftStep1 struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// DummyDraftStep2 используется для приёма данных второго шага из JSON-запроса.
// Все поля опциональны, как и в исходной форме.
type DummyDraftStep2 struct {
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	WeekdayOpen   string `json:"weekday_open"`
	WeekdayClose  string `json:"weekday_close"`
	SaturdayOpen  string `json:"saturday_open"`
	SaturdayClose string `json:"saturday_close"`
	SundayOpen    string `json:"sunday_open"`
	SundayClose   string `json:"sunday_close"`
}

// PlaceCategories — закрытый список категорий из выпадающего списка мастера.
var PlaceCategories = []string{
	"restaurant",
	"cafe",
	"hotel",
	"museum",
	"shopping",
	"park",
	"other",
}

// ValidCategory сообщает, входит ли категория в список допустимых.
func ValidCategory(category string) bool {
	for _, c := range PlaceCategories {
		if c == category {
			return true
		}
	}
	return false
}
