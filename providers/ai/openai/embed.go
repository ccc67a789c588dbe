package openai

import (
	"context"
	"sort"
	"strings"

	"github.com/llmc-dev/llmc/internal/utils"
	"github.com/llmc-dev/llmc/providers/ai"
	"github.com/llmc-dev/llmc/providers/observability"
)

// embeddingRequest represents the /v1/embeddings request format. Image is a
// vLLM multimodal extension: image URLs embedded together with the text
// input. Standard OpenAI endpoints ignore it.
type embeddingRequest struct {
	Model string   `json:"model"`
	Input any      `json:"input"` // string or []string
	Image []string `json:"image,omitempty"`
}

type embeddingResponse struct {
	Object string `json:"object"` // "list"
	Model  string `json:"model"`
	Data   []struct {
		Object    string    `json:"object"` // "embedding"
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Usage *chatUsage `json:"usage,omitempty"`
}

// EmbedTexts implements ai.EmbeddingProvider for plain-text inputs. The
// returned vectors follow input order regardless of the order the API
// reports them in.
func (provider *Provider) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	response, err := provider.postEmbeddings(ctx, embeddingRequest{
		Model: provider.model,
		Input: texts,
	})
	if err != nil {
		return nil, err
	}

	if len(response.Data) != len(texts) {
		return nil, ai.NewError(ai.ErrKindClient, "embeddings response has %d vectors for %d inputs", len(response.Data), len(texts))
	}

	sort.Slice(response.Data, func(i, j int) bool {
		return response.Data[i].Index < response.Data[j].Index
	})

	vectors := make([][]float64, len(response.Data))
	for i, item := range response.Data {
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

// EmbedBlocks implements ai.EmbeddingProvider for one multimodal input. Text
// blocks are joined with spaces, image blocks travel as URLs next to the
// text, and the backend returns a single fused vector.
func (provider *Provider) EmbedBlocks(ctx context.Context, blocks []ai.ContentBlock) ([]float64, error) {
	var textParts []string
	var images []string

	for _, block := range blocks {
		switch block.Type {
		case "text":
			textParts = append(textParts, block.Text)
		case "image_url":
			if block.Image != nil {
				images = append(images, block.Image.WireURL())
			}
		}
	}

	response, err := provider.postEmbeddings(ctx, embeddingRequest{
		Model: provider.model,
		Input: strings.Join(textParts, " "),
		Image: images,
	})
	if err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, ai.NewError(ai.ErrKindClient, "embeddings response has no vectors")
	}
	return response.Data[0].Embedding, nil
}

func (provider *Provider) postEmbeddings(ctx context.Context, request embeddingRequest) (*embeddingResponse, error) {
	provider.log.Debug("sending embeddings request",
		observability.String(observability.AttrLLMProvider, "openai"),
		observability.String(observability.AttrLLMModel, provider.model),
	)

	_, response, err := utils.DoPostSync[embeddingResponse](ctx, provider.client, provider.baseURL+embeddingsEndpoint, provider.apiKey, request, provider.log)
	if err != nil {
		return nil, ai.WrapError(ai.ErrKindClient, err, "embeddings request failed for model %q", provider.model)
	}
	if response == nil {
		return nil, ai.NewError(ai.ErrKindClient, "empty embeddings response from model %q", provider.model)
	}
	return response, nil
}
