// Package experiment runs grids of round-robin instances against scheduling approaches,
// stores the results per paradigm and instance size, and cross-checks every stored schedule.
package experiment

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/roundrobin/pkg/cp"
	"github.com/limaJavier/roundrobin/pkg/encoder"
	"github.com/limaJavier/roundrobin/pkg/model"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config describes an experiment grid
type Config struct {
	// Team counts to schedule, odd counts are rounded up to the next even one
	Instances []int `yaml:"instances" validate:"required,min=1,dive,gte=2,even"`
	// Time given to each (instance, approach) run
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	// Time (in seconds) recorded for runs that found no schedule
	Ceiling    int      `yaml:"ceiling" validate:"gt=0"`
	Approaches []string `yaml:"approaches" validate:"required,min=1,unique,dive,approach"`
	// Constraint toggles shared by every encoder
	EnforceBalance   bool `yaml:"enforce_balance"`
	SymmetryBreaking bool `yaml:"symmetry_breaking"`
	PeriodCap        int  `yaml:"period_cap" validate:"gte=1"`
	// Number of runs executed at the same time
	Parallelism int `yaml:"parallelism" validate:"gte=1,lte=64"`
	// Directory receiving one <paradigm>/<teams>.json file per paradigm and instance
	Output string `yaml:"output" validate:"required"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("approach", func(field validator.FieldLevel) bool {
		_, ok := Lookup(field.Field().String())
		return ok
	})
	_ = configValidate.RegisterValidation("even", func(field validator.FieldLevel) bool {
		return field.Field().Int()%2 == 0
	})
}

func DefaultConfig() Config {
	return Config{
		Instances:        []int{6, 8, 10},
		Timeout:          model.DefaultCeiling * time.Second,
		Ceiling:          model.DefaultCeiling,
		Approaches:       InProcessApproachNames(),
		EnforceBalance:   true,
		SymmetryBreaking: true,
		PeriodCap:        model.DefaultPeriodCap,
		Parallelism:      1,
		Output:           "res",
	}
}

// LoadConfig reads a YAML experiment file. Keys missing from the file keep their DefaultConfig value.
func LoadConfig(file string) (Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read experiment file: %w", err)
	}
	return ParseConfig(bytes)
}

func ParseConfig(bytes []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return Config{}, fmt.Errorf("cannot parse experiment file: %w", err)
	}

	config.Instances = lo.Uniq(lo.Map(config.Instances, func(teams int, _ int) int { return model.NormalizeTeams(teams) }))
	slices.Sort(config.Instances)

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the configuration against its struct tags
func (config Config) Validate() error {
	if err := configValidate.Struct(config); err != nil {
		return fmt.Errorf("invalid experiment configuration: %w", err)
	}
	return nil
}

// Options returns the encoder options shared by every run of the grid
func (config Config) Options() encoder.Options {
	return encoder.Options{
		EnforceBalance:   config.EnforceBalance,
		SymmetryBreaking: config.SymmetryBreaking,
		PeriodCap:        config.PeriodCap,
		Search:           cp.InputOrder,
	}
}

// ValidatorOptions returns the options the stored schedules are checked with
func (config Config) ValidatorOptions() model.Options {
	return model.Options{
		EnforceBalance: config.EnforceBalance,
		PeriodCap:      config.PeriodCap,
	}
}

func (config Config) Budget() encoder.Budget {
	return encoder.Budget{
		Timeout: config.Timeout,
		Ceiling: config.Ceiling,
	}
}
