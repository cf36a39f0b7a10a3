// Package envelope defines the canonical response shape shared by the live
// and simulated execution paths. Every gateway call resolves to an Envelope;
// callers check Success before reading Data.
package envelope

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Envelope wraps a payload with a success flag and optional error/message.
// Exactly one of (Success=true, Data set) or (Success=false, Error set) holds.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Raw is the untyped envelope the dispatcher traffics in. Facades decode
// Raw.Data into concrete domain types.
type Raw = Envelope[json.RawMessage]

// OK returns a success envelope carrying data.
func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

// OKMessage returns a success envelope carrying data and a human message.
func OKMessage[T any](data T, message string) Envelope[T] {
	return Envelope[T]{Success: true, Data: data, Message: message}
}

// Fail returns a failure envelope carrying an error message.
func Fail[T any](err string) Envelope[T] {
	return Envelope[T]{Success: false, Error: err}
}

// MarshalRaw marshals v and wraps it in a success Raw envelope. Marshal
// failures become failure envelopes rather than panics: the gateway contract
// is that no call ever returns a Go error.
func MarshalRaw(v interface{}) Raw {
	b, err := json.Marshal(v)
	if err != nil {
		return Fail[json.RawMessage]("encode response: " + err.Error())
	}
	return OK(json.RawMessage(b))
}

// DecodeRaw interprets a wire body as a Raw envelope. The remote service
// historically returned bare payloads on some endpoints; a body without a
// "success" field is treated as legacy bare data and wrapped.
func DecodeRaw(body []byte) Raw {
	if len(body) == 0 {
		return Raw{Success: true}
	}
	if gjson.GetBytes(body, "success").Exists() {
		var env Raw
		if err := json.Unmarshal(body, &env); err != nil {
			return Fail[json.RawMessage]("decode response: " + err.Error())
		}
		return env
	}
	return OK(json.RawMessage(body))
}

// As converts a Raw envelope into a typed one, decoding Data when present.
func As[T any](raw Raw) Envelope[T] {
	out := Envelope[T]{Success: raw.Success, Error: raw.Error, Message: raw.Message}
	if !raw.Success || len(raw.Data) == 0 {
		return out
	}
	if err := json.Unmarshal(raw.Data, &out.Data); err != nil {
		return Fail[T]("decode response: " + err.Error())
	}
	return out
}
