package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		panic(err.Error())
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody
}

func TestHandleMeasureEmptyGroundTruth(t *testing.T) {
	body := model.MeasureRequestBody{
		Transcription: []model.Note{
			{Onset: 0, Track: 0, Pitch: 60, Dur: 100},
			{Onset: 100, Track: 0, Pitch: 64, Dur: 100},
		},
	}
	resp, respBody := postJSON(t, HandleMeasure, "/measure", body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var measureResponse model.MeasureResponse
	err := json.Unmarshal(respBody, &measureResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(float64(2), measureResponse.Counts["add_note"])
	assert.Equal(float64(0), measureResponse.Counts["remove_note"])
}

func TestHandleMeasureEmptyTranscription(t *testing.T) {
	body := model.MeasureRequestBody{
		GroundTruth: []model.Note{
			{Onset: 0, Track: 0, Pitch: 60, Dur: 100},
			{Onset: 100, Track: 0, Pitch: 64, Dur: 100},
			{Onset: 200, Track: 0, Pitch: 67, Dur: 100},
		},
	}
	resp, respBody := postJSON(t, HandleMeasure, "/measure", body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var measureResponse model.MeasureResponse
	err := json.Unmarshal(respBody, &measureResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(float64(3), measureResponse.Counts["remove_note"])
}

func TestHandleDegradeRemoveNote(t *testing.T) {
	body := model.DegradeRequestBody{
		Notes: []model.Note{
			{Onset: 0, Track: 0, Pitch: 60, Dur: 100},
			{Onset: 100, Track: 0, Pitch: 64, Dur: 100},
		},
		Degradation: "remove_note",
		Seed:        1,
	}
	resp, respBody := postJSON(t, HandleDegrade, "/degrade", body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var degradeResponse model.DegradeResponse
	err := json.Unmarshal(respBody, &degradeResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal("remove_note", degradeResponse.Degradation)
	assert.Equal(1, len(degradeResponse.Notes))
}

func TestHandleDegradeUnknownDegradation(t *testing.T) {
	body := model.DegradeRequestBody{
		Notes:       []model.Note{{Onset: 0, Track: 0, Pitch: 60, Dur: 100}},
		Degradation: "transpose_everything",
	}
	resp, respBody := postJSON(t, HandleDegrade, "/degrade", body)

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)

	var errResponse model.ErrorResponse
	json.Unmarshal(respBody, &errResponse)
	assert.Contains(errResponse.Error, "transpose_everything")
}

func TestHandleDegradeEmptyNotes(t *testing.T) {
	body := model.DegradeRequestBody{Degradation: "pitch_shift"}
	resp, _ := postJSON(t, HandleDegrade, "/degrade", body)

	assert.Equal(t, 400, resp.StatusCode)
}
