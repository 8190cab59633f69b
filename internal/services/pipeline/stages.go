package pipeline

import (
	"context"
	"fmt"
)

// TransportInput normalizes inbound voice or text payloads before they enter
// the chain.
type TransportInput struct{}

// Process passes the payload through. Media-specific normalization hooks in
// here once a real transport is attached.
func (s *TransportInput) Process(_ context.Context, data interface{}, _ *Exchange) (interface{}, error) {
	return data, nil
}

// TransportOutput delivers the assistant payload back to the caller's
// transport.
type TransportOutput struct{}

// Process passes the payload through.
func (s *TransportOutput) Process(_ context.Context, data interface{}, _ *Exchange) (interface{}, error) {
	return data, nil
}

// STTConfig configures speech recognition.
type STTConfig struct {
	Language             string `json:"language"`
	EnableInterimResults bool   `json:"enable_interim_results"`
	Punctuation          bool   `json:"punctuation"`
	ProfanityFilter      bool   `json:"profanity_filter"`
}

// DefaultSTTConfig returns the default speech recognition settings.
func DefaultSTTConfig() STTConfig {
	return STTConfig{
		Language:             "en-US",
		EnableInterimResults: true,
		Punctuation:          true,
		ProfanityFilter:      true,
	}
}

// STTService converts candidate audio to text. Text payloads pass through
// untouched so text-only transports skip recognition.
type STTService struct {
	config STTConfig
}

// NewSTTService creates a speech-to-text stage.
func NewSTTService(config STTConfig) *STTService {
	return &STTService{config: config}
}

// Process transcribes audio payloads. The recognition backend is not wired
// yet; audio input is rejected until it is.
func (s *STTService) Process(_ context.Context, data interface{}, _ *Exchange) (interface{}, error) {
	switch payload := data.(type) {
	case string:
		return payload, nil
	case []byte:
		return nil, fmt.Errorf("speech recognition backend not configured")
	default:
		return nil, fmt.Errorf("unsupported input payload type %T", data)
	}
}

// TTSService converts assistant text to audio. With no synthesis backend
// configured the text passes through unchanged.
type TTSService struct{}

// NewTTSService creates a text-to-speech stage.
func NewTTSService() *TTSService {
	return &TTSService{}
}

// Process passes text through until a synthesis backend is attached.
func (s *TTSService) Process(_ context.Context, data interface{}, _ *Exchange) (interface{}, error) {
	return data, nil
}

// LLMConfig configures the interview logic model.
type LLMConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultLLMConfig returns the default interview logic settings.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       "meta/llama-3.3-70b-instruct",
		Temperature: 0.7,
		MaxTokens:   2048,
	}
}

// LLMResult is the structured output of the interview logic stage.
type LLMResult struct {
	Response string `json:"response"`
}

// LLMService runs the interview logic over the candidate's utterance.
type LLMService struct {
	config LLMConfig
}

// NewLLMService creates the interview logic stage.
func NewLLMService(config LLMConfig) *LLMService {
	return &LLMService{config: config}
}

// Process produces the assistant response for the utterance. The model
// backend is not wired yet; the stage echoes a placeholder so the chain
// stays exercisable end to end.
func (s *LLMService) Process(_ context.Context, data interface{}, ex *Exchange) (interface{}, error) {
	utterance, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("interview logic expects text input, got %T", data)
	}
	_ = utterance

	result := &LLMResult{Response: "acknowledged"}
	ex.Response = result.Response
	return result, nil
}
