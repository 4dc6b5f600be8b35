package testutil

import (
	"fmt"
	"testing"

	"go-file-share/pkg/config"
	"go-file-share/pkg/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB 按 config.test.yaml 打开一个迁移好的内存 SQLite，测试结束时关闭
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	appCfg, err := config.Load(config.Dir(), "config.test")
	require.NoError(t, err, "Failed to load test config")

	cfg := appCfg.Database
	// 每个测试使用独立的内存库，互不干扰
	cfg.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	conn, err := db.Open(cfg)
	require.NoError(t, err, "Failed to connect to test database")

	t.Cleanup(func() {
		if err := db.Close(conn); err != nil {
			t.Logf("Warning: Failed to close test database: %v", err)
		}
	})
	return conn
}
