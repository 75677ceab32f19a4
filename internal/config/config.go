package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Configはアプリ全体の設定
type Config struct {
	StorageDriver string // 永続化の選択（file / postgres）

	DataDir      string // フラットファイルの置き場所
	ProductsFile string // 在庫ファイル名
	InvoicesFile string // 請求書ファイル名

	LogLevel  string // debug/info/warn/error
	LogFormat string // text/json
}

// Loadは環境変数（未指定はデフォルト）
func Load() (Config, error) {
	cfg := Config{
		StorageDriver: Getenv("STORAGE_DRIVER", "file"),

		DataDir:      Getenv("DATA_DIR", "."),
		ProductsFile: Getenv("PRODUCTS_FILE", "inventario.txt"),
		InvoicesFile: Getenv("INVOICES_FILE", "facturas.txt"),

		LogLevel:  Getenv("LOG_LEVEL", "info"),
		LogFormat: Getenv("LOG_FORMAT", "text"),
	}

	//必須チェック
	if cfg.StorageDriver != "file" && cfg.StorageDriver != "postgres" {
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be file or postgres")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json")
	}

	return cfg, nil
}

func (c Config) ProductsPath() string {
	return filepath.Join(c.DataDir, c.ProductsFile)
}

func (c Config) InvoicesPath() string {
	return filepath.Join(c.DataDir, c.InvoicesFile)
}

// Getenvは環境変数を読む（未設定・空ならデフォルト）
func Getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
