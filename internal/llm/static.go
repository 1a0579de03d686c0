package llm

import (
	"context"
	"sync"
)

// staticResponses are the fixed answers served when no real LLM backend is
// available. They are generically useful car advice so the assistant remains
// usable in demos without credentials.
var staticResponses = []string{
	"I need a Groq API key to provide detailed assistance. Based on general knowledge, if your headlights aren't working, first check the fuses, then inspect the bulbs and wiring connections.",
	"To diagnose that wheel noise, safely jack up the car and try to move the wheel. Grinding or play in the wheel often indicates worn wheel bearings that should be replaced soon.",
	"For optimal vehicle maintenance, regularly check fluid levels, tire pressure, and listen for unusual noises. Address small issues before they become major problems.",
}

// StaticClient cycles through a fixed response list. It never fails.
type StaticClient struct {
	mu        sync.Mutex
	responses []string
	next      int
}

// NewStaticClient returns a client serving the built-in car-advice responses.
func NewStaticClient() *StaticClient {
	return &StaticClient{responses: staticResponses}
}

// NewStaticClientWith returns a client cycling through the given responses.
func NewStaticClientWith(responses []string) *StaticClient {
	return &StaticClient{responses: responses}
}

// Generate returns the next canned response, wrapping around at the end.
func (c *StaticClient) Generate(ctx context.Context, messages []Message) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp := c.responses[c.next%len(c.responses)]
	c.next++
	return resp, nil
}
