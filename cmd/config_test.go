package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/site-metrics/internal/config"
)

func TestConfigCmd_RedactsSecrets(t *testing.T) {
	cfg = &config.Config{
		Google: config.GoogleConfig{APIKey: "AIzaSyExampleKey"},
		Bing:   config.BingConfig{APIKey: "bing-secret"},
		Output: config.OutputConfig{Dir: "outputs"},
	}

	var buf bytes.Buffer
	configCmd.SetOut(&buf)
	defer configCmd.SetOut(nil)

	require.NoError(t, configCmd.RunE(configCmd, nil))
	assert.NotContains(t, buf.String(), "AIzaSyExampleKey")
	assert.NotContains(t, buf.String(), "bing-secret")

	var got config.Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "outputs", got.Output.Dir)
	assert.Equal(t, "AI************ey", got.Google.APIKey)
}
