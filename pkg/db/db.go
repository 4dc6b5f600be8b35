package db

import (
	"fmt"
	"strings"

	"go-file-share/internal/model"
	"go-file-share/pkg/config"
	"go-file-share/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(sqliteDSN(cfg.DSN)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqlite 默认不检查外键，且 PRAGMA 只对执行它的连接生效，
// 所以放在 DSN 中让连接池里的每个连接都打开
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// Open 建立数据库连接并执行自动迁移。返回的句柄由调用方注入到各个 repository 中。
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(d, &gorm.Config{
		// 唯一键冲突转换为 gorm.ErrDuplicatedKey，外键错误转换为 gorm.ErrForeignKeyViolated
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}

	logger.L.Info("Database connected and migrated successfully", zap.String("driver", cfg.Driver))
	return conn, nil
}

// Migrate 自动迁移模式。连接表必须在 AutoMigrate 之前注册。
func Migrate(conn *gorm.DB) error {
	joins := []struct {
		owner interface{}
		field string
		table interface{}
	}{
		{&model.File{}, "Users", &model.FileUser{}},
		{&model.File{}, "Groups", &model.FileGroup{}},
		{&model.Group{}, "Users", &model.UserGroup{}},
	}
	for _, j := range joins {
		if err := conn.SetupJoinTable(j.owner, j.field, j.table); err != nil {
			return fmt.Errorf("failed to setup join table for %s: %w", j.field, err)
		}
	}

	err := conn.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.File{},
		&model.FileUser{},
		&model.FileGroup{},
		&model.UserGroup{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close 关闭底层连接池
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
