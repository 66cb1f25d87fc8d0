package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/vitwit/paradex/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("felt", validateFeltTag)
}

// ValidateStruct runs the struct tag validations and reports failures as
// configuration errors.
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return types.NewError(types.CodeConfig, fmt.Sprintf("validation failed: %v", err), nil)
	}
	return nil
}

// ValidateParadexConfig checks a fetched config, including that every
// class hash and address is a valid felt.
func ValidateParadexConfig(cfg *types.ParadexConfig) error {
	if err := ValidateStruct(cfg); err != nil {
		return err
	}
	for name, v := range map[string]string{
		"paraclearAccountHash":      cfg.ParaclearAccountHash,
		"paraclearAccountProxyHash": cfg.ParaclearAccountProxyHash,
		"paraclearAddress":          cfg.ParaclearAddress,
	} {
		if _, err := HexToFelt(v); err != nil {
			return types.NewError(types.CodeConfig, fmt.Sprintf("invalid %s", name), v)
		}
	}
	return nil
}

func validateFeltTag(fl validator.FieldLevel) bool {
	_, err := HexToFelt(fl.Field().String())
	return err == nil
}
