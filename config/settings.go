package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
)

// LoadSettings reads paradex.yaml from the given directories (optional)
// and PARADEX_* environment variables, the latter taking precedence.
func LoadSettings(paths ...string) (*types.Config, error) {
	v := viper.New()
	v.SetConfigName("paradex")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("environment", string(types.EnvironmentTestnet))
	v.SetDefault("config_url", "")
	v.SetDefault("starknet_rpc_url", "")
	v.SetDefault("paraclear_rpc_url", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("max_fee", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("enable_metrics", false)

	v.SetEnvPrefix("PARADEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, types.NewError(types.CodeConfig, fmt.Sprintf("failed to read settings: %v", err), nil)
			}
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.NewError(types.CodeConfig, fmt.Sprintf("failed to decode settings: %v", err), nil)
	}

	if fee := v.GetString("max_fee"); fee != "" {
		n, ok := new(big.Int).SetString(fee, 0)
		if !ok || n.Sign() <= 0 {
			return nil, types.NewError(types.CodeConfig, "invalid max_fee", fee)
		}
		cfg.MaxFee = n
	}

	if err := utils.ValidateStruct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
