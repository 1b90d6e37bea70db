package mockservers

import (
	"net/http"

	"github.com/goccy/go-json"

	"restaurant-booking-server/logging"
)

type translatedText struct {
	TranslatedText string `json:"translatedText"`
}

type translationMockResponse struct {
	Data struct {
		Translations []translatedText `json:"translations"`
	} `json:"data"`
}

func StartTranslationApiServer(port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/language/translate/v2", TranslationApiHandler)

	logging.Info().Str("port", port).Msg("Translation API mock server starting")

	err := http.ListenAndServe(":"+port, mux)
	if err != nil {
		// fatal condition
		logging.Fatal().Err(err).Msg("Failed to start Translation API mock server")
	}
}

// TranslationApiHandler echoes every q parameter back as its own translation.
func TranslationApiHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" && r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := r.ParseForm()
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if r.Form.Get("target") == "" {
		http.Error(w, "missing target", http.StatusBadRequest)
		return
	}

	var response translationMockResponse
	for _, q := range r.Form["q"] {
		response.Data.Translations = append(response.Data.Translations, translatedText{TranslatedText: q})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		logging.Error().Err(err).Msg("error while writing the response")
	}
}
