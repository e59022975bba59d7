package queue

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
)

// EncodingGzip marks a payload body as base64 of the gzip-compressed log
const EncodingGzip = "gzip"

// maxDecodedLogBytes bounds decompression of a single queued log
const maxDecodedLogBytes = 64 << 20

// ErrPayloadTooLarge is returned when an encoded combat log does not fit in one message
var ErrPayloadTooLarge = errors.New("combat log payload too large")

// CombatLogPayload is the message body of a queued combat log
type CombatLogPayload struct {
	MatchID  string `json:"match_id"`
	Encoding string `json:"encoding"`
	Body     string `json:"body"`
}

// EncodeCombatLog compresses a combat log into a queue message body
func EncodeCombatLog(matchID, combatLog string) (string, error) {
	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return "", fmt.Errorf("failed to create gzip writer: %w", err)
	}
	if _, err := gz.Write([]byte(combatLog)); err != nil {
		return "", fmt.Errorf("failed to compress combat log: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("failed to flush gzip writer: %w", err)
	}

	body, err := json.Marshal(CombatLogPayload{
		MatchID:  matchID,
		Encoding: EncodingGzip,
		Body:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	return string(body), nil
}

// DecodeCombatLog reverses EncodeCombatLog
func DecodeCombatLog(body []byte) (string, string, error) {
	var payload CombatLogPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if payload.MatchID == "" {
		return "", "", errors.New("payload is missing match_id")
	}
	if payload.Encoding != EncodingGzip {
		return "", "", fmt.Errorf("unsupported payload encoding %q", payload.Encoding)
	}

	compressed, err := base64.StdEncoding.DecodeString(payload.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode payload body: %w", err)
	}

	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", "", fmt.Errorf("failed to open gzip body: %w", err)
	}
	defer gz.Close()

	raw, err := io.ReadAll(io.LimitReader(gz, maxDecodedLogBytes+1))
	if err != nil {
		return "", "", fmt.Errorf("failed to decompress payload body: %w", err)
	}
	if len(raw) > maxDecodedLogBytes {
		return "", "", fmt.Errorf("decompressed combat log exceeds %d bytes", maxDecodedLogBytes)
	}

	return payload.MatchID, string(raw), nil
}
