package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/logging"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewTo(&buf, "debug", "json")
	log.WithField("op", "doctors").Debug("simulated call")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "doctors", line["op"])
	assert.Equal(t, "debug", line["level"])
}

func TestUnknownLevelIsInfo(t *testing.T) {
	log := logging.NewTo(&bytes.Buffer{}, "chatty", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
