package normalizer

import (
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"

	"github.com/diwise/wikibase-codec/pkg/wikibase/codec"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

const (
	EncodingJSON    string = "json"
	EncodingMsgpack string = "msgpack"
)

type OutputConfig struct {
	MapFormat string `yaml:"mapFormat"`
	Encoding  string `yaml:"encoding"`
	Indent    string `yaml:"indent"`
}

type ReferencesConfig struct {
	HashPolicy string `yaml:"hashPolicy"`
}

type ClaimsConfig struct {
	AssignMissingGUIDs bool `yaml:"assignMissingGUIDs"`
	// Subject is the entity id that new claim GUIDs are prefixed with
	Subject string `yaml:"subject"`
}

type Config struct {
	Output     OutputConfig     `yaml:"output"`
	References ReferencesConfig `yaml:"references"`
	Claims     ClaimsConfig     `yaml:"claims"`
}

func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			MapFormat: wire.MapsAsObjects.String(),
			Encoding:  EncodingJSON,
		},
		References: ReferencesConfig{
			HashPolicy: "trust",
		},
	}
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if _, err := wire.ParseMapFormat(cfg.Output.MapFormat); err != nil {
		return fmt.Errorf("invalid output configuration: %w", err)
	}

	if _, err := codec.ParseHashPolicy(cfg.References.HashPolicy); err != nil {
		return fmt.Errorf("invalid references configuration: %w", err)
	}

	switch cfg.Output.Encoding {
	case "", EncodingJSON, EncodingMsgpack:
	default:
		return fmt.Errorf("invalid output configuration: unknown encoding %q", cfg.Output.Encoding)
	}

	if cfg.Claims.AssignMissingGUIDs {
		if _, err := ids.Parse(cfg.Claims.Subject); err != nil {
			return fmt.Errorf("invalid claims configuration: a valid subject is required to assign guids: %w", err)
		}
	}

	return nil
}
