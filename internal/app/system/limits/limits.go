// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxJSONBody is the largest JSON request body any endpoint decodes.
	MaxJSONBody = 1 << 20 // 1 MB
)
