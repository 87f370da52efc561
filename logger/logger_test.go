package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	defer Setup(os.Stderr, "info", "text")

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "debug", "json"))
	logrus.WithField("bar", 3).Debug("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert := assert.New(t)
	assert.Equal("hello", entry["msg"])
	assert.Equal("debug", entry["level"])
	assert.Equal(float64(3), entry["bar"])
}

func TestSetupLevelFilters(t *testing.T) {
	defer Setup(os.Stderr, "info", "text")

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "warn", "text"))
	logrus.Info("quiet")
	assert.Empty(t, buf.String())
	logrus.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestSetupErrors(t *testing.T) {
	assert.Error(t, Setup(&bytes.Buffer{}, "chatty", "text"))
	assert.Error(t, Setup(&bytes.Buffer{}, "info", "xml"))
}
