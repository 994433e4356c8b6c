package utils

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

const embeddingDimensions = 1536

// EmbeddingClientInterface produces a vector for free-text interest queries.
type EmbeddingClientInterface interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
}

type OpenAIEmbeddingClient struct {
	client *openai.Client
}

func NewOpenAIEmbeddingClient(apiKey string) *OpenAIEmbeddingClient {
	return &OpenAIEmbeddingClient{client: openai.NewClient(apiKey)}
}

func (c *OpenAIEmbeddingClient) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("embedding response empty")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

// LocalEmbeddingClient is a deterministic hash-based embedder used when no
// API key is configured. Same text always maps to the same vector, which is
// enough for tests and offline catalogs.
type LocalEmbeddingClient struct{}

func NewLocalEmbeddingClient() *LocalEmbeddingClient {
	return &LocalEmbeddingClient{}
}

func (c *LocalEmbeddingClient) Embed(_ context.Context, text string) (pgvector.Vector, error) {
	values := make([]float32, embeddingDimensions)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		seed := h.Sum32()
		for i := 0; i < 8; i++ {
			index := int(seed>>uint(i*4)) % embeddingDimensions
			if index < 0 {
				index += embeddingDimensions
			}
			values[index] += 1
		}
	}

	var norm float64
	for _, v := range values {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range values {
			values[i] *= scale
		}
	}
	return pgvector.NewVector(values), nil
}
