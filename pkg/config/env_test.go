package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 7},
		{name: "valid", value: "25", want: 25},
		{name: "padded", value: " 25 ", want: 25},
		{name: "decimal falls back", value: "2.5", want: 7},
		{name: "garbage falls back", value: "many", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_PAGER_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("TEST_PAGER_INT", 7))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_PAGER_FLOAT", "2.5")
	assert.Equal(t, 2.5, GetEnvFloat("TEST_PAGER_FLOAT", 1))

	t.Setenv("TEST_PAGER_FLOAT", "fast")
	assert.Equal(t, 1.0, GetEnvFloat("TEST_PAGER_FLOAT", 1))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_PAGER_BOOL", "true")
	assert.True(t, GetEnvBool("TEST_PAGER_BOOL", false))

	t.Setenv("TEST_PAGER_BOOL", "0")
	assert.False(t, GetEnvBool("TEST_PAGER_BOOL", true))

	t.Setenv("TEST_PAGER_BOOL", "yes")
	assert.True(t, GetEnvBool("TEST_PAGER_BOOL", true))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_PAGER_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_PAGER_DURATION", time.Second))

	t.Setenv("TEST_PAGER_DURATION", "90")
	assert.Equal(t, time.Second, GetEnvDuration("TEST_PAGER_DURATION", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_PAGER_LIST", "id, pk,,name ")
	assert.Equal(t, []string{"id", "pk", "name"}, GetEnvStringList("TEST_PAGER_LIST", nil))

	t.Setenv("TEST_PAGER_LIST", " , ")
	assert.Equal(t, []string{"id"}, GetEnvStringList("TEST_PAGER_LIST", []string{"id"}))
}

func TestGetEnvStringMap(t *testing.T) {
	t.Setenv("TEST_PAGER_MAP", "Authorization=Bearer abc, X-Tenant = acme, broken, =x")
	assert.Equal(t, map[string]string{
		"Authorization": "Bearer abc",
		"X-Tenant":      "acme",
	}, GetEnvStringMap("TEST_PAGER_MAP"))

	t.Setenv("TEST_PAGER_MAP", "")
	assert.Nil(t, GetEnvStringMap("TEST_PAGER_MAP"))
}

func TestValidateDurationRange(t *testing.T) {
	assert.NoError(t, ValidateDurationRange(time.Second, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(time.Millisecond, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(time.Hour, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(time.Second, time.Minute, time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.NoError(t, ValidateNonNegativeDuration(0))
}
