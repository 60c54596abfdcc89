package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultTTSURL is the Google Translate text-to-speech endpoint
const DefaultTTSURL = "https://translate.google.com/translate_tts"

const ttsRequestTimeout = 10 * time.Second

// ErrUpstream is returned when the TTS endpoint cannot produce audio
var ErrUpstream = errors.New("tts upstream failure")

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9_\-]+`)

// TTSService fetches pronunciation audio and caches it on disk
type TTSService struct {
	audioDir string
	baseURL  string
	client   *http.Client
}

// Option configures a TTSService
type Option func(*TTSService)

// WithBaseURL points the service at another TTS endpoint
func WithBaseURL(u string) Option {
	return func(s *TTSService) {
		s.baseURL = u
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *TTSService) {
		s.client = c
	}
}

// NewTTSService creates a new TTS service
func NewTTSService(audioDir string, opts ...Option) *TTSService {
	s := &TTSService{
		audioDir: audioDir,
		baseURL:  DefaultTTSURL,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Filename returns the cache file name for a module item
func Filename(module, key string) string {
	name := strings.ToLower(strings.TrimSpace(module + "_" + key))
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeFilenameChars.ReplaceAllString(name, "") + ".mp3"
}

// Pronunciation returns the path of an MP3 speaking text, downloading it on
// first use
func (s *TTSService) Pronunciation(ctx context.Context, module, key, text string) (string, error) {
	path := filepath.Join(s.audioDir, Filename(module, key))

	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := s.download(ctx, text, path); err != nil {
		return "", err
	}
	return path, nil
}

// download fetches the audio into a temporary file and renames it into
// place so readers never see a partial file
func (s *TTSService) download(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d", ErrUpstream, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".tts-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to read audio: %v", ErrUpstream, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}
