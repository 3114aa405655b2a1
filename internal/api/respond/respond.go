package respond

import (
	"encoding/json"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

type success struct {
	Result any `json:"result"`
}

type failure struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// OK writes a 200 response wrapping result.
func OK(w http.ResponseWriter, result any) {
	JSON(w, http.StatusOK, success{Result: result})
}

// Created writes a 201 response wrapping result.
func Created(w http.ResponseWriter, result any) {
	JSON(w, http.StatusCreated, success{Result: result})
}

// Fail writes an error response.
func Fail(w http.ResponseWriter, status int, err error) {
	JSON(w, status, failure{Error: err.Error()})
}
