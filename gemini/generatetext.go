package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var (
	sdkCategories = map[string]genai.HarmCategory{
		HarmCategoryHarassment:       genai.HarmCategoryHarassment,
		HarmCategoryHateSpeech:       genai.HarmCategoryHateSpeech,
		HarmCategorySexuallyExplicit: genai.HarmCategorySexuallyExplicit,
		HarmCategoryDangerousContent: genai.HarmCategoryDangerousContent,
	}
	sdkThresholds = map[string]genai.HarmBlockThreshold{
		BlockLowAndAbove:    genai.HarmBlockLowAndAbove,
		BlockMediumAndAbove: genai.HarmBlockMediumAndAbove,
		BlockOnlyHigh:       genai.HarmBlockOnlyHigh,
		BlockNone:           genai.HarmBlockNone,
	}
)

// SDKClient generates text through the official Go SDK. A client is created
// per call since the API key is only known at request time.
type SDKClient struct {
	opts []option.ClientOption
}

func NewSDKClient(opts ...option.ClientOption) *SDKClient {
	return &SDKClient{opts: opts}
}

func (c *SDKClient) GenerateText(ctx context.Context, cfg GenerateTextConfig) (string, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, c.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = DefaultModel
	}
	model := client.GenerativeModel(modelName)
	if err := configureModel(model, cfg.Request); err != nil {
		return "", err
	}
	resp, err := model.GenerateContent(ctx, requestParts(cfg.Request)...)
	if err != nil {
		return "", sdkError(err)
	}
	return textFromResponse(resp)
}

func configureModel(model *genai.GenerativeModel, req *GenerateContentRequest) error {
	if req == nil {
		return fmt.Errorf("empty request")
	}
	if gc := req.GenerationConfig; gc != nil {
		model.SetTemperature(gc.Temperature)
		model.SetTopK(gc.TopK)
		model.SetTopP(gc.TopP)
		model.SetMaxOutputTokens(gc.MaxOutputTokens)
	}
	for _, s := range req.SafetySettings {
		category, ok := sdkCategories[s.Category]
		if !ok {
			return fmt.Errorf("unsupported harm category %q", s.Category)
		}
		threshold, ok := sdkThresholds[s.Threshold]
		if !ok {
			return fmt.Errorf("unsupported block threshold %q", s.Threshold)
		}
		model.SafetySettings = append(model.SafetySettings, &genai.SafetySetting{
			Category:  category,
			Threshold: threshold,
		})
	}
	if si := req.SystemInstruction; si != nil {
		model.SystemInstruction = &genai.Content{Parts: textParts(si)}
	}
	return nil
}

func requestParts(req *GenerateContentRequest) []genai.Part {
	var parts []genai.Part
	for _, c := range req.Contents {
		parts = append(parts, textParts(c)...)
	}
	return parts
}

func textParts(c *Content) []genai.Part {
	var parts []genai.Part
	for _, p := range c.Parts {
		if p != nil {
			parts = append(parts, genai.Text(p.Text))
		}
	}
	return parts
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoContent
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", ErrNoContent
	}
	text, ok := content.Parts[0].(genai.Text)
	if !ok || text == "" {
		log.Errorf("unexpected first part type %T in gemini response", content.Parts[0])
		return "", ErrNoContent
	}
	return string(text), nil
}

func sdkError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		log.Errorf("gemini blocked the response: %s", blocked)
		return ErrNoContent
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Body
		if body == "" {
			body = apiErr.Message
		}
		return &APIError{StatusCode: apiErr.Code, Body: body}
	}
	return fmt.Errorf("failed to generate text: %w", err)
}
