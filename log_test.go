package streamjson

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNoopLoggerDiscardsEverything(t *testing.T) {
	var l Logger = noopLogger{}
	l.Debugf("x")
	l.Infof("x")
	l.Warnf("x")
	l.Errorf("x")
}

func TestLogrusLoggerForwardsToUnderlying(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	l := NewLogrusLogger(base)
	l.Errorf("boom %d", 42)

	require.Contains(t, buf.String(), "boom 42")
}
