package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	t.Parallel()

	a, b := GenerateID(), GenerateID()
	require.NotEqual(t, a, b)
	require.True(t, ValidID(a))
	require.False(t, ValidID("not-an-id"))
	require.False(t, ValidID(""))
}

func TestConfigureLogger(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	require.NoError(t, ConfigureLogger("debug"))
	require.Equal(t, log.DebugLevel, log.GetLevel())

	require.NoError(t, ConfigureLogger(""))
	require.Equal(t, log.DebugLevel, log.GetLevel())

	require.Error(t, ConfigureLogger("loud"))
}

func TestJSONEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ok", func(c *gin.Context) { JSONResponse(c, http.StatusOK, gin.H{"a": 1}, "fine") })
	router.GET("/err", func(c *gin.Context) {
		JSONError(c, http.StatusForbidden, errors.New("boom"), "nope")
		require.True(t, c.IsAborted())
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var ok map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	require.Equal(t, "fine", ok["message"])
	require.Equal(t, map[string]any{"a": 1.0}, ok["data"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
	var failed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failed))
	require.Equal(t, "nope", failed["message"])
	require.Equal(t, "boom", failed["error"])
}
