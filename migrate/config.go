package migrate

import (
	"os"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Lzww0608/bsonuuid"
)

// DefaultBatchSize is used when Config.BatchSize is zero.
const DefaultBatchSize = 500

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Config describes one column to re-encode. KeyColumn must be an integer column; Run
// stops with ErrKeyNotInteger otherwise.
//
// From and To are pointers so that a missing value is an error rather than Standard.
type Config struct {
	DSN        string                   `yaml:"dsn"`
	Table      string                   `yaml:"table"`
	KeyColumn  string                   `yaml:"key_column"`
	UUIDColumn string                   `yaml:"uuid_column"`
	From       *bsonuuid.Representation `yaml:"from"`
	To         *bsonuuid.Representation `yaml:"to"`
	BatchSize  int                      `yaml:"batch_size"`
	DryRun     bool                     `yaml:"dry_run"`
}

// LoadConfig reads a YAML config file. Missing batch_size falls back to DefaultBatchSize.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return cfg, nil
}

// Validate checks that cfg names a usable table and a real conversion.
func (c Config) Validate() error {
	if c.DSN == "" {
		return errors.New("dsn is required")
	}
	if _, err := mysql.ParseDSN(c.DSN); err != nil {
		return errors.Wrap(err, "invalid dsn")
	}
	for name, ident := range map[string]string{
		"table":       c.Table,
		"key_column":  c.KeyColumn,
		"uuid_column": c.UUIDColumn,
	} {
		if !identifierPattern.MatchString(ident) {
			return errors.Errorf("%s %q must match %s", name, ident, identifierPattern)
		}
	}
	if c.KeyColumn == c.UUIDColumn {
		return errors.New("key_column and uuid_column must differ")
	}
	if c.From == nil {
		return errors.New("from is required")
	}
	if c.To == nil {
		return errors.New("to is required")
	}
	if !c.From.Valid() || !c.To.Valid() {
		return errors.Wrapf(bsonuuid.ErrUnknownRepresentation, "from %v, to %v", *c.From, *c.To)
	}
	if *c.From == *c.To {
		return errors.Errorf("from and to are both %v", *c.From)
	}
	if c.BatchSize < 0 {
		return errors.Errorf("batch_size %d is negative", c.BatchSize)
	}
	return nil
}

func (c Config) batchSize() int {
	if c.BatchSize == 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}
