package model

type ScoreResponse struct {
	Id     string     `json:"id"`
	Score  *Score     `json:"score"`
	Layout Assignment `json:"layout"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
