// Package match implements tolerant matching of lookup keys against the
// opaque result payload embedded in job records. The worker may emit project
// and user identifiers as strings or numbers interchangeably, so both sides
// are normalized to strings before comparison instead of relying on implicit
// coercion.
package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// JMESPath expressions locating the match keys inside a result payload.
// The worker has emitted both camelCase and snake_case over time; the
// fallback keeps older records resolvable.
const (
	projectIDExpr = "projectId || project_id"
	userIDExpr    = "userId || user_id"
	frameTypeExpr = "frameType || frame_type"
)

// ResultKeys holds the identifiers extracted from one result payload.
type ResultKeys struct {
	ProjectID any
	UserID    any
	FrameType any
}

// ExtractKeys decodes a result payload and pulls out the matching keys.
// Missing keys come back as nil; a payload that is not a JSON document
// yields an error.
func ExtractKeys(result json.RawMessage) (ResultKeys, error) {
	if len(result) == 0 {
		return ResultKeys{}, nil
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(result))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return ResultKeys{}, fmt.Errorf("decode result payload: %w", err)
	}

	keys := ResultKeys{}
	var err error
	if keys.ProjectID, err = jmespath.Search(projectIDExpr, doc); err != nil {
		return ResultKeys{}, fmt.Errorf("extract project id: %w", err)
	}
	if keys.UserID, err = jmespath.Search(userIDExpr, doc); err != nil {
		return ResultKeys{}, fmt.Errorf("extract user id: %w", err)
	}
	if keys.FrameType, err = jmespath.Search(frameTypeExpr, doc); err != nil {
		return ResultKeys{}, fmt.Errorf("extract frame type: %w", err)
	}
	return keys, nil
}

// Loose reports whether two values are equal after string normalization.
// "42" matches 42, but "" never matches anything (spec requires the keys to
// be present for a match).
func Loose(a, b any) bool {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}

// Normalize coerces a value to its canonical string form. Integral floats
// lose their fractional suffix so 42.0 and "42" compare equal.
func Normalize(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return normalizeNumeric(t.String())
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// normalizeNumeric strips a trailing ".0"-style fraction from a numeric
// literal ("42.0" becomes "42") while leaving real fractions alone.
func normalizeNumeric(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
