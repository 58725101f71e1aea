package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadEnv(t *testing.T) {
	t.Setenv("TEST_STR", "hog")
	t.Setenv("TEST_INT", "640")
	t.Setenv("TEST_BAD_INT", "six")
	t.Setenv("TEST_FLOAT", "0.5")
	t.Setenv("TEST_BOOL_ON", "Yes")
	t.Setenv("TEST_BOOL_OFF", "off")

	s := "cnn"
	readEnvString("TEST_STR", &s)
	assert.Equal(t, "hog", s)
	readEnvString("TEST_MISSING", &s)
	assert.Equal(t, "hog", s, "missing variable keeps the current value")

	i := 1000
	readEnvInt("TEST_INT", &i)
	assert.Equal(t, 640, i)
	readEnvInt("TEST_BAD_INT", &i)
	assert.Equal(t, 640, i, "unparsable value keeps the current value")

	f := 0.25
	readEnvFloat("TEST_FLOAT", &f)
	assert.Equal(t, 0.5, f)

	b := false
	readEnvBool("TEST_BOOL_ON", &b)
	assert.True(t, b)
	readEnvBool("TEST_BOOL_OFF", &b)
	assert.False(t, b)
	readEnvBool("TEST_MISSING", &b)
	assert.False(t, b)
}

func TestLoad(t *testing.T) {
	oldWidth, oldMethod := IMAGE_WIDTH, DETECTION_METHOD
	t.Cleanup(func() {
		IMAGE_WIDTH, DETECTION_METHOD = oldWidth, oldMethod
	})
	t.Setenv("IMAGE_WIDTH", "800")
	t.Setenv("DETECTION_METHOD", "hog")
	Load()
	assert.Equal(t, 800, IMAGE_WIDTH)
	assert.Equal(t, "hog", DETECTION_METHOD)
}
