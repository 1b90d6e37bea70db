package mockservers

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/goccy/go-json"

	"restaurant-booking-server/logging"
)

// word valences in the AFINN style, -5..5
var lexicon = map[string]int{
	"amazing":       4,
	"awesome":       4,
	"excellent":     3,
	"great":         3,
	"delicious":     3,
	"tasty":         2,
	"fresh":         1,
	"friendly":      2,
	"good":          3,
	"nice":          3,
	"love":          3,
	"loved":         3,
	"recommend":     2,
	"best":          3,
	"clean":         2,
	"perfect":       3,
	"bad":           -3,
	"terrible":      -3,
	"awful":         -3,
	"horrible":      -3,
	"disgusting":    -3,
	"worst":         -3,
	"dirty":         -2,
	"rude":          -2,
	"slow":          -2,
	"cold":          -1,
	"bland":         -2,
	"expensive":     -1,
	"hate":          -3,
	"poor":          -2,
	"disappointed":  -2,
	"disappointing": -2,
}

var negations = map[string]bool{
	"not":    true,
	"no":     true,
	"never":  true,
	"isn't":  true,
	"wasn't": true,
	"don't":  true,
	"didn't": true,
}

type sentimentMockRequest struct {
	Text string `json:"text"`
}

type sentimentMockResponse struct {
	Score int `json:"score"`
}

func StartSentimentApiServer(port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sentiment", SentimentApiHandler)

	logging.Info().Str("port", port).Msg("Sentiment API mock server starting")

	err := http.ListenAndServe(":"+port, mux)
	if err != nil {
		// fatal condition
		logging.Fatal().Err(err).Msg("Failed to start Sentiment API mock server")
	}
}

func SentimentApiHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var request sentimentMockRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		http.Error(w, "invalid data format", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(sentimentMockResponse{Score: ScoreText(request.Text)})
	if err != nil {
		logging.Error().Err(err).Msg("error while writing the response")
	}
}

// ScoreText sums the valences of the words of text. A negation flips the
// valence of the word right after it.
func ScoreText(text string) int {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	score := 0
	negate := false
	for _, word := range words {
		if negations[word] {
			negate = true
			continue
		}
		valence := lexicon[word]
		if negate {
			valence = -valence
			negate = false
		}
		score += valence
	}

	return score
}
