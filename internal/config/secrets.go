// internal/config/secrets.go
//
// Vault-reference resolution for configuration values.
//
// Context
// -------
// Operators keep secret material (today: the database password inside the
// DSN) out of flat files by writing `vault:<path>#<key>` where a plain
// string would go.  Before the merged Koanf tree is unmarshalled, every
// such reference is swapped for the secret it names.  When no reference
// is present the Vault client is never constructed, so development setups
// without a Vault server work unchanged.
//
// Reference format
// ----------------
//
//	vault:secret/data/compass#db_password
//	      └── logical path ──┘ └─ key ──┘
//
// KV-v2 responses nest the payload under a “data” map; both the nested
// and flat shapes are handled.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
	koanf "github.com/knadh/koanf/v2"
)

const secretRefPrefix = "vault:"

// resolveSecretRefs replaces every `vault:` string value in the tree with
// the secret it references.  No-op when the tree carries no references.
func resolveSecretRefs(ctx context.Context, k *koanf.Koanf) error {
	refs := make(map[string]string) // config key → reference
	for key, val := range k.All() {
		if s, ok := val.(string); ok && strings.HasPrefix(s, secretRefPrefix) {
			refs[key] = strings.TrimPrefix(s, secretRefPrefix)
		}
	}
	if len(refs) == 0 {
		return nil
	}

	cli, err := newVaultClient()
	if err != nil {
		return err
	}

	for key, ref := range refs {
		secret, err := readSecret(ctx, cli, ref)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", key, err)
		}
		if err := k.Set(key, secret); err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}
	}
	return nil
}

// newVaultClient builds a client from the standard VAULT_* environment.
func newVaultClient() (*vault.Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}
	cli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		cli.SetToken(tok)
	}
	return cli, nil
}

// readSecret fetches one value addressed as `<path>#<key>`.
func readSecret(ctx context.Context, cli *vault.Client, ref string) (string, error) {
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", fmt.Errorf("malformed vault reference %q", ref)
	}

	sec, err := cli.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", err
	}
	if sec == nil || sec.Data == nil {
		return "", fmt.Errorf("no secret at %q", path)
	}

	data := sec.Data
	// KV-v2 nests the payload one level down.
	if nested, ok := data["data"].(map[string]any); ok {
		data = nested
	}
	val, ok := data[key].(string)
	if !ok {
		return "", fmt.Errorf("key %q missing at %q", key, path)
	}
	return val, nil
}
