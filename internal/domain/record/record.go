package record

import "time"

// Record — сохранённая запись партии: канонический SGF-текст плюс
// метаданные корневого узла для архива.
type Record struct {
	RecordKeySecret string    `json:"-" bson:"record_key_secret"`
	RecordKeyPublic string    `json:"recordKeyPublic" bson:"record_key_public"`
	PlayerBlack     string    `json:"playerBlack" bson:"player_black"`
	PlayerWhite     string    `json:"playerWhite" bson:"player_white"`
	Date            string    `json:"date,omitempty" bson:"date"`
	Result          string    `json:"result,omitempty" bson:"result"`
	GameCount       int       `json:"gameCount" bson:"game_count"`
	NodeCount       int       `json:"nodeCount" bson:"node_count"`
	Sgf             string    `json:"sgf,omitempty" bson:"-"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
}

// ParseSummary описывает форму разобранного дерева для ответа /parse.
type ParseSummary struct {
	Canonical  string         `json:"canonical"`
	GameCount  int            `json:"gameCount"`
	NodeCount  int            `json:"nodeCount"`
	Properties map[string]int `json:"properties"`
}

type ArchivePage struct {
	Records []Record `json:"records"`
	Page    int      `json:"page"`
	Total   int64    `json:"total"`
}
