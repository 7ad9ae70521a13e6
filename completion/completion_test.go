package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteSuccess(t *testing.T) {
	assert := assert.New(t)

	var got completionRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal("application/json", r.Header.Get("Content-Type"))

		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Write([]byte(`{"choices":[{"message":{"content":"  The fee is 50 pesos.  "}}]}`))
	}))
	defer upstream.Close()

	client, err := NewClient(Config{BaseURL: upstream.URL}, "test-key")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	answer, err := client.Complete(context.Background(), "How much is the fee?")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("The fee is 50 pesos.", answer)
	assert.Equal(DefaultModel, got.Model)
	assert.Equal(DefaultMaxTokens, got.MaxTokens)
	assert.Equal(DefaultTemperature, got.Temperature)
	assert.True(got.DoSample)

	if assert.Len(got.Messages, 1) {
		assert.Equal("user", got.Messages[0].Role)
		assert.Equal("How much is the fee?", got.Messages[0].Content)
	}
}

func TestCompleteZeroTemperature(t *testing.T) {
	assert := assert.New(t)

	var got completionRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer upstream.Close()

	temperature := 0.0
	client, err := NewClient(Config{
		BaseURL:     upstream.URL,
		Temperature: &temperature,
	}, "test-key")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	if _, err := client.Complete(context.Background(), "anything"); err != nil {
		assert.Fail(err.Error())
		return
	}

	// An explicit zero must reach the wire, not be replaced by the default.
	assert.Equal(0.0, got.Temperature)
}

func TestCompleteUpstreamError(t *testing.T) {
	assert := assert.New(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client, err := NewClient(Config{BaseURL: upstream.URL}, "test-key")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	_, err = client.Complete(context.Background(), "anything")

	var upstreamErr *UpstreamError
	if assert.True(errors.As(err, &upstreamErr)) {
		assert.Equal(http.StatusTooManyRequests, upstreamErr.StatusCode)
		assert.Contains(upstreamErr.Body, "rate limited")
	}
}

func TestCompleteMalformedSuccessBody(t *testing.T) {
	assert := assert.New(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer upstream.Close()

	client, err := NewClient(Config{BaseURL: upstream.URL}, "test-key")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	answer, err := client.Complete(context.Background(), "anything")
	assert.NoError(err)
	assert.Equal("", answer)
}

func TestCompleteNoChoices(t *testing.T) {
	assert := assert.New(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer upstream.Close()

	client, err := NewClient(Config{BaseURL: upstream.URL}, "test-key")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	answer, err := client.Complete(context.Background(), "anything")
	assert.NoError(err)
	assert.Equal("", answer)
}

func TestNewClientRequiresKey(t *testing.T) {
	assert := assert.New(t)

	_, err := NewClient(Config{}, "")
	assert.Error(err)
}
