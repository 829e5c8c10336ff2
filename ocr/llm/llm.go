// Package llm recognizes text with vision capable chat models over the OpenAI API.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared/constant"
	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/raster"
	"github.com/opengs/tesswrap/tessdata"
)

const APIKeyEnvVar = "OPENAI_API_KEY"

const DefaultPrompt = "Extract all visible text from this image. Preserve the layout and formatting as much as possible. Return only the extracted text without any additional commentary."

// Models do not report confidence, results get this fixed value
const Confidence = 95

var ErrMissingAPIKey = errors.New("OpenAI API key is not configured")

type Config struct {
	// Empty means value of OPENAI_API_KEY
	APIKey string `json:"-" mapstructure:"apiKey"`
	// OpenAI compatible endpoint, e.g. "http://localhost:11434/v1/". Empty means the official API.
	BaseURL string `json:"baseURL" mapstructure:"baseURL"`
	Model   string `json:"model" mapstructure:"model"`
	Prompt  string `json:"prompt" mapstructure:"prompt"`
	// Default is 4096
	MaxTokens int64 `json:"maxTokens" mapstructure:"maxTokens"`
	// Images are scaled down so that the longer side fits. Default is 2048
	MaxDimension int `json:"maxDimension" mapstructure:"maxDimension"`
	// Default is 85
	JPEGQuality int `json:"jpegQuality" mapstructure:"jpegQuality"`
	// "low", "high" or "auto". Default is "high"
	Detail string `json:"detail" mapstructure:"detail"`
}

func DefaultConfig() Config {
	return Config{
		Model:        "gpt-4o",
		Prompt:       DefaultPrompt,
		MaxTokens:    4096,
		MaxDimension: 2048,
		JPEGQuality:  85,
		Detail:       "high",
	}
}

// Vision model as OCR engine. Trained data path is ignored, language is passed to the model as a hint.
type Engine struct {
	config  Config
	options []option.RequestOption

	client    *openai.Client
	languages []string
}

func New(config Config, opts ...option.RequestOption) *Engine {
	defaults := DefaultConfig()
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Prompt == "" {
		config.Prompt = defaults.Prompt
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaults.MaxTokens
	}
	if config.MaxDimension <= 0 {
		config.MaxDimension = defaults.MaxDimension
	}
	if config.JPEGQuality <= 0 {
		config.JPEGQuality = defaults.JPEGQuality
	}
	if config.Detail == "" {
		config.Detail = defaults.Detail
	}
	return &Engine{config: config, options: opts}
}

func (e *Engine) Name() string {
	return "llm"
}

func (e *Engine) Init(ctx context.Context, dataPath string, language string) error {
	e.client = nil
	apiKey := e.config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnvVar)
	}
	if apiKey == "" && e.config.BaseURL == "" {
		return ErrMissingAPIKey
	}
	languages := tessdata.SplitLanguages(language)
	if len(languages) == 0 {
		return errors.New("language is empty")
	}

	options := []option.RequestOption{option.WithAPIKey(apiKey)}
	if e.config.BaseURL != "" {
		options = append(options, option.WithBaseURL(e.config.BaseURL))
	}
	options = append(options, e.options...)
	client := openai.NewClient(options...)

	e.client = &client
	e.languages = languages
	return nil
}

func (e *Engine) languageHint() string {
	names := make([]string, 0, len(e.languages))
	for _, code := range e.languages {
		if code == "osd" || code == "equ" {
			continue
		}
		names = append(names, tessdata.DisplayName(code))
	}
	if len(names) == 0 {
		return ""
	}
	return "The text is expected to be in: " + strings.Join(names, ", ") + "."
}

func (e *Engine) Recognize(ctx context.Context, image *raster.Raster) (ocr.Result, error) {
	if e.client == nil {
		return ocr.Result{}, ocr.ErrNotInitialized
	}

	var buf bytes.Buffer
	if err := raster.EncodeJPEG(&buf, raster.Downscale(image, e.config.MaxDimension), e.config.JPEGQuality); err != nil {
		return ocr.Result{}, errors.Join(errors.New("failed to prepare image for upload"), err)
	}

	prompt := e.config.Prompt
	if hint := e.languageHint(); hint != "" {
		prompt += "\n" + hint
	}
	contentParts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{
				Type: constant.Text("text"),
				Text: prompt,
			},
		},
		{
			OfImageURL: &openai.ChatCompletionContentPartImageParam{
				Type: constant.ImageURL("image_url"),
				ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
					URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
					Detail: e.config.Detail,
				},
			},
		},
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: contentParts,
					},
				},
			},
		},
	}
	params.Model = e.config.Model
	params.MaxTokens = openai.Int(e.config.MaxTokens)

	completion, err := e.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ocr.Result{}, errors.Join(errors.New("chat completion request failed"), err)
	}
	if len(completion.Choices) == 0 {
		return ocr.Result{}, errors.New("no response from API")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	return ocr.Result{Text: text, Confidence: Confidence}, nil
}

func (e *Engine) Close() error {
	e.client = nil
	return nil
}
