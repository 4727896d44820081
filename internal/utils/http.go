// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// internalErrorBody is sent when the response value itself cannot be encoded,
// so clients still receive the usual {"detail": ...} envelope.
const internalErrorBody = `{"detail":"internal server error"}`

// WriteJSON encodes data and writes it with statusCode and a JSON
// Content-Type. An unencodable value produces a 500 error envelope and a
// non-nil error; the returned int is the number of body bytes written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(internalErrorBody))
		return 0, fmt.Errorf("encode response body: %w", err)
	}

	w.WriteHeader(statusCode)
	return w.Write(body)
}
