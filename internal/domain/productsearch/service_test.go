package productsearch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/product-search-api/internal/infrastructure/telemetry"
	"github.com/janhq/product-search-api/internal/utils/platformerrors"
)

type fakeSearchClient struct {
	payload string
	err     error
	calls   []string
}

func (f *fakeSearchClient) Search(ctx context.Context, query string) (*SearchPayload, error) {
	f.calls = append(f.calls, query)
	if f.err != nil {
		return nil, f.err
	}
	return &SearchPayload{Raw: []byte(f.payload)}, nil
}

type fakeGenerator struct {
	content  string
	err      error
	messages [][]Message
}

func (f *fakeGenerator) Generate(ctx context.Context, messages []Message) (string, error) {
	f.messages = append(f.messages, messages)
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func newTestService(search SearchClient, gen Generator) *Service {
	return NewService(search, gen, DefaultPromptTemplate(), telemetry.NewSanitizer(telemetry.PIILevelHashed, "test"), zerolog.Nop())
}

func TestSearchProduct_Chair(t *testing.T) {
	search := &fakeSearchClient{payload: `{"items": [{"name": "POÄNG"}]}`}
	gen := &fakeGenerator{content: "We found a POÄNG chair for you!"}
	svc := newTestService(search, gen)

	result, err := svc.SearchProduct(context.Background(), "chair")
	require.NoError(t, err)
	assert.Equal(t, &Result{Query: "chair", Response: "We found a POÄNG chair for you!"}, result)
	assert.Equal(t, []string{"chair"}, search.calls)

	require.Len(t, gen.messages, 1)
	messages := gen.messages[0]
	require.Len(t, messages, 2)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, DefaultSystemPrompt, messages[0].Content)
	assert.Equal(t, RoleUser, messages[1].Role)
	assert.True(t, strings.HasPrefix(messages[1].Content, DefaultInstruction+"\n"))
	assert.Contains(t, messages[1].Content, `{"items": [{"name": "POÄNG"}]}`)
}

func TestSearchProduct_SearchFailureSkipsGeneration(t *testing.T) {
	cause := errors.New("search returned status 404")
	search := &fakeSearchClient{err: NewUpstreamError(context.Background(), ErrSearchFailed, "search", cause)}
	gen := &fakeGenerator{content: "unused"}
	svc := newTestService(search, gen)

	result, err := svc.SearchProduct(context.Background(), "table")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrSearchFailed))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	assert.Empty(t, gen.messages)
}

func TestSearchProduct_EmptyQuery(t *testing.T) {
	for _, query := range []string{"", "   "} {
		search := &fakeSearchClient{payload: `{}`}
		gen := &fakeGenerator{}
		svc := newTestService(search, gen)

		_, err := svc.SearchProduct(context.Background(), query)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyQuery))
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
		assert.Empty(t, search.calls)
	}
}

func TestSearchProduct_GenerationFailure(t *testing.T) {
	search := &fakeSearchClient{payload: `{"items": []}`}
	gen := &fakeGenerator{err: NewUpstreamError(context.Background(), ErrGenerationFailed, "generation", errors.New("no choices"))}
	svc := newTestService(search, gen)

	_, err := svc.SearchProduct(context.Background(), "lamp")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeInternal))
}

func TestSearchProduct_Idempotent(t *testing.T) {
	search := &fakeSearchClient{payload: `{"items": [{"name": "BILLY"}]}`}
	gen := &fakeGenerator{content: "BILLY is a bookcase."}
	svc := newTestService(search, gen)

	first, err := svc.SearchProduct(context.Background(), "bookcase")
	require.NoError(t, err)
	second, err := svc.SearchProduct(context.Background(), "bookcase")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, gen.messages, 2)
	assert.Equal(t, gen.messages[0], gen.messages[1])
}

func TestOutcomeFor(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, OutcomeTimeout, outcomeFor(NewUpstreamError(ctx, ErrUpstreamTimeout, "search", nil), OutcomeSearchFailed))
	assert.Equal(t, OutcomeUnavailable, outcomeFor(NewUpstreamError(ctx, ErrUpstreamUnavailable, "generation", nil), OutcomeGenerationFailed))
	assert.Equal(t, OutcomeSearchFailed, outcomeFor(errors.New("boom"), OutcomeSearchFailed))
}
