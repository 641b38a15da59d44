package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Health must degrade to 503 when its dependencies are unreachable, keeping
// the response shape (including the dlq section) intact for dashboards.
func TestHealthReportsDownDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Lazily-opened connections pointed at closed ports: the handler's own
	// pings are the first network round trips.
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=health dbname=health sslmode=disable"), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})

	r := gin.New()
	r.GET("/health", Health(db, rdb))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"dlq"`)

	var body struct {
		OK    bool             `json:"ok"`
		DB    string           `json:"db"`
		Redis string           `json:"redis"`
		DLQ   map[string]int64 `json:"dlq"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.OK)
	assert.Equal(t, "error", body.DB)
	assert.Equal(t, "error", body.Redis)
	assert.Empty(t, body.DLQ, "unreadable queues are skipped, not reported as zero")
	assert.NotContains(t, w.Body.String(), "health@", "never echo connection details")
}
