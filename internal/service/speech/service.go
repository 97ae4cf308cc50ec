package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/AI-killer-project-team/backend/internal/config"
)

// Interviewer tone presets keyed by the session style tag.
const (
	pressureInstructions = "압박 면접관 톤으로, 간결하고 단호하게 질문하세요."
	friendlyInstructions = "친절하고 차분한 면접관 톤으로 질문하세요."
)

// SynthesisRequest describes one question read-out.
type SynthesisRequest struct {
	Text         string
	Voice        string
	Style        string
	Instructions string
	Speed        float64
	Format       string
}

// Service wraps the OpenAI audio API for question read-out and spoken-answer
// transcription. Both operations are bounded by the configured timeout.
type Service struct {
	client  *openai.Client
	cfg     config.SpeechConfig
	timeout time.Duration
}

// NewService creates the speech service.
func NewService(cfg config.SpeechConfig) *Service {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Service{
		client:  openai.NewClientWithConfig(clientConfig),
		cfg:     cfg,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Synthesize renders the text as speech and returns the audio bytes together
// with the response format actually used.
func (s *Service) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, "", fmt.Errorf("synthesis text is empty")
	}

	voice := req.Voice
	if voice == "" {
		voice = s.cfg.DefaultVoice
	}

	speed := req.Speed
	if speed <= 0 {
		speed = s.cfg.DefaultSpeed
	}

	format := req.Format
	if format == "" {
		format = "mp3"
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateSpeech(callCtx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.cfg.TTSModel),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voice),
		Instructions:   resolveInstructions(req.Style, req.Instructions),
		ResponseFormat: openai.SpeechResponseFormat(format),
		Speed:          speed,
	})
	if err != nil {
		return nil, "", fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read synthesized audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("synthesized audio is empty")
	}
	return audio, format, nil
}

// Transcribe converts recorded answer audio to text.
func (s *Service) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio payload is empty")
	}
	if filename == "" {
		filename = "answer.webm"
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateTranscription(callCtx, openai.AudioRequest{
		Model:    s.cfg.STTModel,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// resolveInstructions prefers an explicit override, then the style preset.
func resolveInstructions(style, override string) string {
	if override != "" {
		return override
	}
	switch style {
	case "pressure":
		return pressureInstructions
	case "friendly":
		return friendlyInstructions
	default:
		return ""
	}
}
