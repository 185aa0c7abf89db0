package secrets

import "errors"

var ErrVaultNotInitialized = errors.New("vault is not initialized")
var ErrVaultSealed = errors.New("vault is sealed")
var ErrNoVaultAddress = errors.New("no vault address configured; set VAULT_ADDR or run papyrusctl init --remote")
var ErrSecretNotFound = errors.New("secret does not exist")
var ErrInvalidReference = errors.New("invalid vault reference")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrSecretNotFound)
}
