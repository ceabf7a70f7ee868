package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/tabscribe/tabscribe/layout"
	"github.com/tabscribe/tabscribe/midi"
	"github.com/tabscribe/tabscribe/model"
	"github.com/tabscribe/tabscribe/tab"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the parse server",
	Long:  `Runs an HTTP server that parses posted tab text and serves the results`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

var (
	scoresMu sync.RWMutex
	scores   = make(map[string]model.ScoreResponse)
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// HandleCreateScore parses the posted tab text, stores the result under
// a fresh id and returns score plus layout.
func HandleCreateScore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return
	}

	score, err := tab.Parse(string(body))
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}

	res := model.ScoreResponse{
		Id:     uuid.New().String(),
		Score:  score,
		Layout: layout.Arrange(score, layout.Config{MaxBarsPerLine: score.Metadata.BarsPerLine}),
	}
	scoresMu.Lock()
	scores[res.Id] = res
	scoresMu.Unlock()

	json.NewEncoder(w).Encode(res)
}

func HandleGetScore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	scoresMu.RLock()
	res, ok := scores[id]
	scoresMu.RUnlock()
	if !ok {
		writeError(w, 404, "no score with id "+id)
		return
	}
	json.NewEncoder(w).Encode(res)
}

// HandleGetMidi renders the stored score as a midi file.
func HandleGetMidi(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	scoresMu.RLock()
	res, ok := scores[id]
	scoresMu.RUnlock()
	if !ok {
		writeError(w, 404, "no score with id "+id)
		return
	}

	s, err := midi.FromScore(res.Score)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scores", HandleCreateScore).Methods("POST")
	router.HandleFunc("/scores/{id}", HandleGetScore).Methods("GET")
	router.HandleFunc("/scores/{id}/midi", HandleGetMidi).Methods("GET")

	handler := cors.Default().Handler(router)
	fmt.Println("Listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
