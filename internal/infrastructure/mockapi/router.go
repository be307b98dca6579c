package mockapi

import "net/http"

func NewRouter(handler *DirectHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /ws/direct", handler.Direct)
	mux.HandleFunc("GET /3ds/{hash}", handler.Challenge)

	return mux
}
