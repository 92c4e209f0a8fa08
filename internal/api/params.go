package api

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/hubgate/hubgate/internal/resource"
)

// DefaultLimit is the page size applied when a caller supplies none
const DefaultLimit = 10

// parseFid parses a FID path parameter as an unsigned 64-bit integer
func parseFid(input string) (uint64, *resource.Error) {
	fid, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, resource.InvalidParams(fmt.Sprintf("Invalid fid: %s", input))
	}
	return fid, nil
}

// parseHashBytes decodes a hex hash, accepting an optional 0x prefix
func parseHashBytes(hash string) ([]byte, *resource.Error) {
	trimmed := strings.TrimPrefix(hash, "0x")
	if trimmed == "" {
		return nil, resource.InvalidParams("Missing hash value")
	}

	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, resource.InvalidParams(fmt.Sprintf("Invalid hash format: %s", hash))
	}
	return decoded, nil
}

// parseAddressBytes decodes a hex address, accepting an optional 0x prefix
func parseAddressBytes(address string) ([]byte, *resource.Error) {
	trimmed := strings.TrimPrefix(address, "0x")
	if trimmed == "" {
		return nil, resource.InvalidParams("Invalid address format: empty address")
	}

	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, resource.InvalidParams(fmt.Sprintf("Invalid address format: %s", address))
	}
	return decoded, nil
}

// validateHash checks hash syntax without keeping the decoded bytes; the
// hub takes the hash in its original string form.
func validateHash(hash string) *resource.Error {
	_, err := parseHashBytes(hash)
	return err
}

// normalizeLimit applies the default and the server-enforced ceiling to a
// requested page size. Only an explicit zero is rejected; absence never
// errors.
func normalizeLimit(limit *int, maxLimit int) (int, *resource.Error) {
	value := DefaultLimit
	if limit != nil {
		value = *limit
	}
	if value <= 0 {
		return 0, resource.InvalidParams("limit must be greater than 0")
	}

	effectiveMax := maxLimit
	if effectiveMax < 1 {
		effectiveMax = 1
	}
	if value > effectiveMax {
		value = effectiveMax
	}
	return value, nil
}

// requiredURL validates a mandatory url query parameter
func requiredURL(url string) (string, *resource.Error) {
	if strings.TrimSpace(url) == "" {
		return "", resource.InvalidParams("Missing required query parameter: url")
	}
	return url, nil
}

// validateTimeRange rejects an inverted start/end timestamp pair
func validateTimeRange(startTime, endTime *uint64) *resource.Error {
	if startTime != nil && endTime != nil && *startTime > *endTime {
		return resource.InvalidParams("start_time must be less than or equal to end_time")
	}
	return nil
}

// parseOptionalInt parses an optional integer query value
func parseOptionalInt(input string) (*int, *resource.Error) {
	if input == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(input)
	if err != nil || value < 0 {
		return nil, resource.InvalidParams(fmt.Sprintf("Invalid integer value: %s", input))
	}
	return &value, nil
}

// parseOptionalUint64 parses an optional unsigned timestamp query value
func parseOptionalUint64(input string) (*uint64, *resource.Error) {
	if input == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return nil, resource.InvalidParams(fmt.Sprintf("Invalid timestamp value: %s", input))
	}
	return &value, nil
}

// parseOptionalBool parses an optional boolean query value
func parseOptionalBool(input string) (*bool, *resource.Error) {
	if input == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(input)
	if err != nil {
		return nil, resource.InvalidParams(fmt.Sprintf("Invalid boolean value: %s", input))
	}
	return &value, nil
}
