package limits

// Size limits for Jira REST payloads and responses

const (
	// JSON is the standard size limit for API response payloads (1MB)
	JSON = 1 << 20

	// Search is the maximum size for search API responses (10MB)
	Search = 10 << 20

	// ErrorBody is the maximum size for error response bodies (1KB)
	// Used when parsing error messages from failed API calls
	ErrorBody = 1024
)
