package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/tco-compare-go/internal/domain/repository"
	"github.com/diillson/tco-compare-go/internal/shared/types"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, types.ErrMissingConfigFile
	}
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := decodeTOML(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedFileFormat, fileExtension)
	}

	return &config, nil
}

// decodeTOML passa a árvore TOML por JSON: o Unmarshal do go-toml v1 recusa
// literais inteiros em campos float64 (price_per_unit = 18).
func decodeTOML(data []byte, config *types.Config) error {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(tree.ToMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, config)
}

// WriteConfigFile grava config no formato indicado pela extensão de filePath
// e retorna o caminho absoluto do arquivo.
func (r *ConfigRepositoryImpl) WriteConfigFile(filePath string, config *types.Config) (string, error) {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf).Order(toml.OrderPreserve).Indentation("  ")
		if err = enc.Encode(config); err != nil {
			return "", fmt.Errorf("error encoding TOML: %w", err)
		}
		data = buf.Bytes()
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(config); err != nil {
			return "", fmt.Errorf("error encoding YAML: %w", err)
		}
		if err = enc.Close(); err != nil {
			return "", fmt.Errorf("error encoding YAML: %w", err)
		}
		data = buf.Bytes()
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return "", fmt.Errorf("error encoding JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedFileFormat, filepath.Ext(filePath))
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("error creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", fmt.Errorf("error writing config file: %w", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return filePath, nil
	}
	return absPath, nil
}
