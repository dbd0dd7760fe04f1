// Package cloudwatch decodes CloudWatch Logs subscription payloads into the
// domain's log batch model.
package cloudwatch

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/user/macie-relay/internal/domain"
)

// Decode turns the base64-encoded, gzip-compressed subscription payload into
// a LogBatch, preserving record order. Any stage failing is a *DecodeError:
// the container format is unparsed, so the whole batch is unrecoverable.
func Decode(data string) (domain.LogBatch, error) {
	compressed, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return domain.LogBatch{}, &domain.DecodeError{Err: fmt.Errorf("base64: %w", err)}
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return domain.LogBatch{}, &domain.DecodeError{Err: fmt.Errorf("gzip: %w", err)}
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return domain.LogBatch{}, &domain.DecodeError{Err: fmt.Errorf("gzip: %w", err)}
	}

	var batch domain.LogBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return domain.LogBatch{}, &domain.DecodeError{Err: fmt.Errorf("json: %w", err)}
	}
	return batch, nil
}
