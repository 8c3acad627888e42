// Package requestid assigns every inbound HTTP request a stable identifier.
//
// Middleware honors an incoming X-Request-ID header when it looks sane and
// generates a UUID otherwise. The id rides the request context and can be
// fed to the logger through LoggerExtractor so every log line of a request
// carries it.
package requestid
