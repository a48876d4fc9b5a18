package providers

import (
	"fmt"
	"mindful/internal/structures"
	"time"

	"github.com/gookit/validate"
)

func init() {
	validate.AddValidator("clock", func(val any) bool {
		s, ok := val.(string)
		if !ok {
			return false
		}
		_, err := time.Parse("15:04", s)
		return err == nil
	})
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func validateStruct(name string, s any) error {
	v := validate.Struct(s)
	if !v.Validate() {
		return fmt.Errorf("invalid %s config: %s", name, v.Errors.One())
	}
	return nil
}

func (cv *CnfValidator) Validate() error {
	c := cv.conf
	sections := []struct {
		name string
		val  any
	}{
		{"webServer", &c.WebServer},
		{"storage", &c.Storage},
		{"logger", &c.Logger},
		{"streak", &c.Streak},
		{"stats", &c.Stats},
	}
	for _, s := range sections {
		if err := validateStruct(s.name, s.val); err != nil {
			return err
		}
	}

	if c.Storage.Driver != "memory" && c.Storage.FilePath == "" {
		return fmt.Errorf("invalid storage config: filePath is required for driver %q", c.Storage.Driver)
	}
	if c.Stats.MinutesPerBlock < 0 {
		return fmt.Errorf("invalid stats config: minutesPerBlock must not be negative")
	}
	if c.Streak.Timezone != "" {
		if _, err := time.LoadLocation(c.Streak.Timezone); err != nil {
			return fmt.Errorf("invalid streak config: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(c.Blocking.RuleSets))
	for i := range c.Blocking.RuleSets {
		rs := &c.Blocking.RuleSets[i]
		if err := validateStruct("blocking rule set", rs); err != nil {
			return err
		}
		if _, dup := seen[rs.ID]; dup {
			return fmt.Errorf("invalid blocking config: duplicate rule set %q", rs.ID)
		}
		seen[rs.ID] = struct{}{}
	}
	return nil
}
