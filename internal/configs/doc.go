// Package configs loads optional TOML defaults for vault2vault.
//
// # Lookup Order
//
//  1. The file named by --config
//  2. .vault2vault.toml in the working directory
//  3. vault2vault/config.toml under the user config directory
//     ($XDG_CONFIG_HOME or the platform equivalent)
//
// # Format
//
//	interactive = false
//	backup = true
//	ignore_undecryptable = false
//	vault_id = "prod"
//	old_pass_file = "~/.vault_pass_old"
//	new_pass_file = "~/.vault_pass"
//	extensions = [".yaml", ".yml"]
//	exclude = ["**/vendor/**"]
//
// Every key is optional. Command-line flags that are set explicitly override
// the file.
package configs
