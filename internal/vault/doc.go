// Package vault implements the Ansible vault envelope used for encrypted
// files and inline !vault variables.
//
// # Envelope
//
// A vault payload is line oriented text:
//
//	$ANSIBLE_VAULT;1.1;AES256
//	6231383936313665633561376439396136653332303164383337663339363830366235383265396338
//	...
//
// The first line is a header naming the format version and cipher. Format 1.2
// adds a fourth field carrying a vault id. The remaining lines are a hex
// encoding, wrapped at 80 columns, of three hex fields separated by newlines:
// the salt, the HMAC and the ciphertext.
//
// # Cipher
//
// The cipher itself (PBKDF2-HMAC-SHA256 key derivation, AES-256-CTR and an
// HMAC-SHA256 digest checked before decrypting) comes from
// github.com/sosedoff/ansible-vault-go, which reads and writes 1.1 payloads
// only. This package parses headers, accepts indented and 1.2 payloads by
// rewriting them to the canonical 1.1 form, and relabels sealed payloads
// with a 1.2 header when a vault id is set.
//
// Encrypting the same plaintext twice yields different payloads because each
// call draws a fresh random salt.
package vault
