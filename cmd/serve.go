package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/yagyapandeya/midi-degradation-toolkit/degrade"
	"github.com/yagyapandeya/midi-degradation-toolkit/measure"
	"github.com/yagyapandeya/midi-degradation-toolkit/model"
)

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the classifier and degradations over HTTP",
	Long: `Serves two endpoints: POST /measure classifies a ground-truth/
transcription pair into degradation counts, and POST /degrade applies a
named degradation to the posted notes.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve(servePort)
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func HandleMeasure(w http.ResponseWriter, r *http.Request) {
	var input model.MeasureRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}

	gt := model.NoteSequence(input.GroundTruth)
	trans := model.NoteSequence(input.Transcription)
	gt.Sort()
	trans.Sort()

	counts := measure.ExcerptDegradations(gt, trans)
	json.NewEncoder(w).Encode(model.MeasureResponse{Counts: counts.ToMap()})
}

func HandleDegrade(w http.ResponseWriter, r *http.Request) {
	var input model.DegradeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, 400, "Could not unmarshal request body: "+err.Error())
		return
	}

	op, ok := degrade.Registry()[input.Degradation]
	if !ok {
		writeError(w, 400, fmt.Sprintf("Unknown degradation %q", input.Degradation))
		return
	}

	seq := model.NoteSequence(input.Notes)
	seq.Sort()
	if err := seq.Validate(); err != nil {
		writeError(w, 400, err.Error())
		return
	}

	rng := rand.New(rand.NewSource(input.Seed))
	degraded, err := op(seq, rng, degrade.DefaultParams())
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	json.NewEncoder(w).Encode(model.DegradeResponse{
		Degradation: input.Degradation,
		Notes:       degraded,
	})
}

func serve(port int) {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/measure", HandleMeasure).Methods("POST")
	router.HandleFunc("/degrade", HandleDegrade).Methods("POST")

	handler := cors.Default().Handler(router)
	fmt.Printf("Listening on :%v\n", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), handler))
}
