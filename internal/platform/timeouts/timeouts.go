// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// AIStory caps a single life-story chat completion request.
const AIStory = 40 * time.Second

// AIImage caps a single avatar image generation request.
const AIImage = 60 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Request caps the time allowed to build one persona over HTTP, including
// the optional AI calls.
const Request = AIStory + AIImage + 5*time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
