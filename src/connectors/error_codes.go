package connectors

import "fmt"

// MarketStackErrorCodes maps MarketStack error envelope codes to human-readable messages.
var MarketStackErrorCodes = map[string]string{
	"invalid_access_key":         "no valid API access key provided",
	"missing_access_key":         "no API access key provided",
	"inactive_user":              "the account is inactive or blocked",
	"https_access_restricted":    "HTTPS access is not supported on the current plan",
	"function_access_restricted": "the endpoint is not supported on the current plan",
	"invalid_api_function":       "the requested API endpoint does not exist",
	"404_not_found":              "resource not found",
	"usage_limit_reached":        "monthly usage limit reached",
	"rate_limit_reached":         "too many requests, rate limit reached",
	"internal_error":             "internal provider error",
	"validation_error":           "request failed provider validation",
	"no_valid_symbols_provided":  "none of the requested symbols is supported",
}

// GetErrorMsg returns a human-readable message for a MarketStack error code.
// If the code is unknown, returns a generic message including the code.
func GetErrorMsg(code string) string {
	if msg, ok := MarketStackErrorCodes[code]; ok {
		return msg
	}
	return fmt.Sprintf("unknown marketstack error %q", code)
}
