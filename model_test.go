package nexus

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestCompletionConfigYAMLUnmarshal(t *testing.T) {
	assert := assert.New(t)

	input := `baseURL: https://api.together.xyz/v1/chat/completions
model: mistralai/Mistral-7B-Instruct-v0.1
maxTokens: 256
temperature: 0.7
timeout: 45s`

	var config CompletionConfig
	if err := yaml.Unmarshal([]byte(input), &config); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("mistralai/Mistral-7B-Instruct-v0.1", config.Model)
	assert.Equal(256, config.MaxTokens)
	assert.Equal(45*time.Second, config.Timeout.Duration())

	if assert.NotNil(config.Temperature) {
		assert.Equal(0.7, *config.Temperature)
	}

	clientCfg := config.ClientConfig()
	assert.Equal("https://api.together.xyz/v1/chat/completions", clientCfg.BaseURL)
	assert.Equal(45*time.Second, clientCfg.Timeout)
}

func TestCompletionConfigJSONUnmarshal(t *testing.T) {
	assert := assert.New(t)

	input := `{
		"model": "mistralai/Mistral-7B-Instruct-v0.1",
		"timeout": "30s"
	}`

	var config CompletionConfig
	if err := json.Unmarshal([]byte(input), &config); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("mistralai/Mistral-7B-Instruct-v0.1", config.Model)
	assert.Equal(30*time.Second, config.Timeout.Duration())
}

func TestBuildPrompt(t *testing.T) {
	assert := assert.New(t)

	prompt := BuildPrompt("Membership costs 50 pesos.", "How much is membership?")

	assert.Contains(prompt, RefusalAnswer)
	assert.Contains(prompt, "Context:\nMembership costs 50 pesos.")
	assert.Contains(prompt, "User Query: How much is membership?")
	assert.True(strings.HasSuffix(prompt, "Answer:"))
}

func TestBuildPromptEmptyContext(t *testing.T) {
	assert := assert.New(t)

	prompt := BuildPrompt("", "Who is the president?")

	assert.Contains(prompt, "Context:\n\n")
	assert.Contains(prompt, "User Query: Who is the president?")
}

func TestJoinPassages(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", JoinPassages(nil))
	assert.Equal("a", JoinPassages([]string{"a"}))
	assert.Equal("a\n\nb\n\nc", JoinPassages([]string{"a", "b", "c"}))
}

func TestValidPaymentMethod(t *testing.T) {
	assert := assert.New(t)

	assert.True(ValidPaymentMethod(PaymentMethodGCash))
	assert.True(ValidPaymentMethod(PaymentMethodPayMaya))
	assert.False(ValidPaymentMethod("cash"))
	assert.False(ValidPaymentMethod(""))
}
