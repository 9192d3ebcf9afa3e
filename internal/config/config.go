package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the full application configuration, loaded from config.toml
// next to the executable.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
}

// ServerConfig HTTP listener settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig locates the data directory and the sales workbook loaded at
// startup.
type DataConfig struct {
	DataDir   string `toml:"data_dir"`
	SalesFile string `toml:"sales_file"`
}

// ReportConfig controls the exported report.
type ReportConfig struct {
	TopCategories int    `toml:"top_categories"`
	FilePrefix    string `toml:"file_prefix"`
}

// LoadConfigInfo carries metadata about how the config was loaded.
type LoadConfigInfo struct {
	// PortSpecified is true when the port was pinned in config.toml or the
	// environment; the -port flag only applies when it is false.
	PortSpecified bool
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20717,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:   "data",
			SalesFile: "sales.xlsx",
		},
		Report: ReportConfig{
			TopCategories: 5,
			FilePrefix:    "food_sales_report",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory holding the executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// ConfigPath returns the config.toml location next to the executable.
func ConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo loads config.toml and reports load metadata. A missing
// file is not an error; defaults apply. Environment variables override the
// file in either case.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return loadConfigAt(ConfigPath())
}

// LoadConfig loads config.toml from the executable directory.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

func loadConfigAt(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	// optional .env next to the working directory
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config, &info)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, fmt.Errorf("parse %s: %w", filepath.Base(configPath), err)
	}

	applyEnvOverrides(config, &info)
	return config, info, nil
}

func applyEnvOverrides(config *AppConfig, info *LoadConfigInfo) {
	if v := os.Getenv("FOODSALES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
			info.PortSpecified = true
		}
	}
	if v := os.Getenv("FOODSALES_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("FOODSALES_SALES_FILE"); v != "" {
		config.Data.SalesFile = v
	}
	if v := os.Getenv("FOODSALES_TOP_CATEGORIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.Report.TopCategories = n
		}
	}
}

// SaveConfig writes the configuration back to config.toml next to the
// executable.
func SaveConfig(config *AppConfig) error {
	return SaveConfigTo(ConfigPath(), config)
}

// SaveConfigTo writes the configuration to an explicit path.
func SaveConfigTo(configPath string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// ResolveDataDir returns the absolute data directory. Relative paths sit
// next to the executable so the tool works from any cwd.
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir creates the data directory and its uploads/exports subdirs.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath builds a path inside the data directory.
func GetDataPath(config *AppConfig, subdir, filename string) string {
	return filepath.Join(ResolveDataDir(config), subdir, filename)
}

// SalesFilePath resolves the configured sales workbook location. Relative
// names live in the data directory.
func SalesFilePath(config *AppConfig) string {
	if config.Data.SalesFile == "" {
		return ""
	}
	if filepath.IsAbs(config.Data.SalesFile) {
		return config.Data.SalesFile
	}
	return filepath.Join(ResolveDataDir(config), config.Data.SalesFile)
}
