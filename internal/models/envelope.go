package models

import "encoding/json"

// Envelope is the fixed-shape body sent on every gateway call. The
// network/blockchain tags and wallet address come from configuration;
// Args carries the operation-specific parameters.
type Envelope struct {
	Network       string         `json:"network"`
	Blockchain    string         `json:"blockchain"`
	WalletAddress string         `json:"walletAddress"`
	Args          map[string]any `json:"args"`
}

// Response is the normalized result of a gateway call: the HTTP status
// code and the raw JSON body. The gateway enforces no schema on Data;
// callers decode it per endpoint.
type Response struct {
	Status int
	Data   json.RawMessage
}

// ErrorBody is the shape the gateway uses for failure replies. Only the
// message field is relied upon; everything else varies per endpoint.
type ErrorBody struct {
	Message string `json:"message"`
}
