package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	redispkg "whisperbox.backend/pkg/redis"
)

func withSuggestCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	redispkg.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redispkg.SetClient(nil) })
}

func TestSuggest_KnownCategory(t *testing.T) {
	withSuggestCache(t)
	client := new(MockSuggestClient)
	uc := NewSuggestUsecase(client, 10*time.Minute)

	want := []string{"first idea", "second idea", "third idea"}
	client.On("Complete", mock.Anything, categoryPrompts["joke"]).Return(want, nil)

	got := uc.Suggest(context.Background(), "joke")
	assert.Equal(t, want, got)
}

func TestSuggest_UnknownCategoryFallsBack(t *testing.T) {
	withSuggestCache(t)
	client := new(MockSuggestClient)
	uc := NewSuggestUsecase(client, 10*time.Minute)

	client.On("Complete", mock.Anything, categoryPrompts[defaultCategory]).
		Return([]string{"something open-ended"}, nil)

	got := uc.Suggest(context.Background(), "no-such-category")
	assert.Equal(t, []string{"something open-ended"}, got)
	client.AssertExpectations(t)
}

func TestSuggest_FailureDegradesToEmptyList(t *testing.T) {
	withSuggestCache(t)
	client := new(MockSuggestClient)
	uc := NewSuggestUsecase(client, 10*time.Minute)

	client.On("Complete", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	got := uc.Suggest(context.Background(), "compliment")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_SecondCallServedFromCache(t *testing.T) {
	withSuggestCache(t)
	client := new(MockSuggestClient)
	uc := NewSuggestUsecase(client, 10*time.Minute)

	want := []string{"a", "b", "c"}
	client.On("Complete", mock.Anything, mock.Anything).Return(want, nil).Once()

	assert.Equal(t, want, uc.Suggest(context.Background(), "advice"))
	assert.Equal(t, want, uc.Suggest(context.Background(), "advice"))
	client.AssertNumberOfCalls(t, "Complete", 1)
}

func TestSuggest_NilClient(t *testing.T) {
	withSuggestCache(t)
	uc := NewSuggestUsecase(nil, 10*time.Minute)

	got := uc.Suggest(context.Background(), "conversation")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
