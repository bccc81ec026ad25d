package model

type MeasureRequestBody struct {
	GroundTruth   []Note `json:"gt"`
	Transcription []Note `json:"trans"`
}

type MeasureResponse struct {
	Counts map[string]float64 `json:"counts"`
}

type DegradeRequestBody struct {
	Notes       []Note `json:"notes"`
	Degradation string `json:"degradation"`
	Seed        int64  `json:"seed"`
}

type DegradeResponse struct {
	Degradation string `json:"degradation"`
	Notes       []Note `json:"notes"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
