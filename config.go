package timelock

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/smartcontractkit/timelock/internal/utils/safecast"
	"github.com/smartcontractkit/timelock/types"
)

// Environment variables read by LoadConfigFromEnv.
const (
	EnvAddress   = "TIMELOCK_ADDRESS"
	EnvAdmin     = "TIMELOCK_ADMIN"
	EnvMinDelay  = "TIMELOCK_MIN_DELAY"
	EnvProposers = "TIMELOCK_PROPOSERS"
	EnvExecutors = "TIMELOCK_EXECUTORS"
)

// Config holds the initial state of a timelock controller.
type Config struct {
	// Address is the principal the timelock acts as. Calls targeting it reach the timelock's
	// own methods.
	Address common.Address `validate:"required"`
	// Admin is granted TimelockAdminRole. The zero address leaves the role without members.
	Admin     common.Address
	MinDelay  types.Timestamp
	Proposers []common.Address
	// Executors are granted ExecutorRole. Including the zero address makes execution
	// permissionless.
	Executors []common.Address
}

// Validate checks the config is usable to create a controller.
func (c Config) Validate() error {
	var validate = validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	return nil
}

// fileConfig is the JSON form of a Config. The minimum delay is written as a duration string
// such as "48h".
type fileConfig struct {
	Address   common.Address   `json:"address"`
	Admin     common.Address   `json:"admin"`
	MinDelay  types.Duration   `json:"minDelay"`
	Proposers []common.Address `json:"proposers"`
	Executors []common.Address `json:"executors"`
}

// NewConfig decodes and validates a JSON config from reader.
func NewConfig(reader io.Reader) (*Config, error) {
	var in fileConfig
	if err := json.NewDecoder(reader).Decode(&in); err != nil {
		return nil, err
	}

	minDelay, err := in.MinDelay.Timestamp()
	if err != nil {
		return nil, err
	}

	out := &Config{
		Address:   in.Address,
		Admin:     in.Admin,
		MinDelay:  minDelay,
		Proposers: in.Proposers,
		Executors: in.Executors,
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}

	return out, nil
}

// LoadConfig reads a JSON config from the file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return NewConfig(f)
}

// LoadConfigFromEnv builds a Config from the TIMELOCK_* variables. Values found in envFiles are
// used unless the variable is also set in the process environment.
//
// TIMELOCK_MIN_DELAY is either a number of clock units or a duration string. Proposers and
// executors are comma separated address lists.
func LoadConfigFromEnv(envFiles ...string) (*Config, error) {
	values := make(map[string]string)
	if len(envFiles) > 0 {
		read, err := godotenv.Read(envFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to read env files: %w", err)
		}
		values = read
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}

		return strings.TrimSpace(values[key])
	}

	var (
		cfg  Config
		errs error
		err  error
	)

	if cfg.Address, err = parseAddress(EnvAddress, lookup(EnvAddress)); err != nil {
		errs = multierr.Append(errs, err)
	}
	if raw := lookup(EnvAdmin); raw != "" {
		if cfg.Admin, err = parseAddress(EnvAdmin, raw); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if raw := lookup(EnvMinDelay); raw != "" {
		if cfg.MinDelay, err = parseDelay(raw); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid %s: %w", EnvMinDelay, err))
		}
	}
	if cfg.Proposers, err = parseAddressList(EnvProposers, lookup(EnvProposers)); err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.Executors, err = parseAddressList(EnvExecutors, lookup(EnvExecutors)); err != nil {
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		return nil, errs
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func parseAddress(name, raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid %s: %q is not a hex address", name, raw)
	}

	return common.HexToAddress(raw), nil
}

func parseAddressList(name, raw string) ([]common.Address, error) {
	var (
		out  []common.Address
		errs error
	)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		addr, err := parseAddress(name, part)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, addr)
	}

	return out, errs
}

func parseDelay(raw string) (types.Timestamp, error) {
	if n, err := safecast.StringToUint64(raw); err == nil {
		return types.Timestamp(n), nil
	}

	d, err := types.ParseDuration(raw)
	if err != nil {
		return 0, err
	}

	return d.Timestamp()
}
