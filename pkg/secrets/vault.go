package secrets

import (
	"fmt"

	vaultapi "github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/command/token"
)

type VaultClient struct {
	VaultConfig *vaultapi.Config
	VaultClient *vaultapi.Client
}

// NewVaultClient connects to address. The token is taken from VAULT_TOKEN or,
// failing that, from the vault CLI token helper (~/.vault-token).
func NewVaultClient(address string) (*VaultClient, error) {
	conf := vaultapi.DefaultConfig()
	if err := conf.ReadEnvironment(); err != nil {
		return nil, err
	}
	if address != "" {
		conf.Address = address
	}
	client, err := vaultapi.NewClient(conf)
	if err != nil {
		return nil, err
	}
	if client.Token() == "" {
		helper, err := token.NewInternalTokenHelper()
		if err != nil {
			return nil, err
		}
		token, err := helper.Get()
		if err != nil {
			return nil, err
		}
		client.SetToken(token)
	}
	return &VaultClient{
		VaultConfig: conf,
		VaultClient: client,
	}, nil
}

func (v *VaultClient) CheckConnection() error {
	hr, err := v.VaultClient.Sys().Health()
	if err != nil {
		return err
	}
	if !hr.Initialized {
		return ErrVaultNotInitialized
	}
	if hr.Sealed {
		return ErrVaultSealed
	}
	return nil
}

// ReadField reads a single string field. KV version 2 mounts nest the
// payload under "data", which is unwrapped here.
func (v *VaultClient) ReadField(path, field string) (string, error) {
	sec, err := v.VaultClient.Logical().Read(path)
	if err != nil {
		return "", err
	}
	if sec == nil || sec.Data == nil {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, path)
	}
	return lookupField(sec.Data, path, field)
}

func lookupField(data map[string]interface{}, path, field string) (string, error) {
	if nested, ok := data["data"].(map[string]interface{}); ok {
		if _, direct := data[field]; !direct {
			data = nested
		}
	}
	value, ok := data[field]
	if !ok || value == nil {
		return "", fmt.Errorf("%w: %s#%s", ErrSecretNotFound, path, field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return fmt.Sprint(value), nil
}
