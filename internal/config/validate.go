package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in 0..max_conns (got %d)", c.Database.MinConns)
	}
	if c.Import.MaxFileBytes <= 0 {
		return fmt.Errorf("import.max_file_bytes must be > 0 (got %d)", c.Import.MaxFileBytes)
	}
	if c.Masking.SessionTTL < 0 {
		return fmt.Errorf("masking.session_ttl must be >= 0 (got %v)", c.Masking.SessionTTL)
	}
	return nil
}
