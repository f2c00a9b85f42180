// Package commands implements the benteng CLI: key generation, sealing,
// and verification of protocol envelopes.
package commands

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	benteng "github.com/ib823/benteng-sdk"
)

var (
	suiteName string
	aeadName  string
	verbose   bool
)

func Execute() error {
	root := &cobra.Command{
		Use:           "benteng",
		Short:         "Hybrid post-quantum envelope tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&suiteName, "suite", "default", `algorithm suite: "default" (ML-KEM-768) or "hybrid" (X25519-ML-KEM-768)`)
	root.PersistentFlags().StringVar(&aeadName, "aead", "aes-gcm", `payload AEAD: "aes-gcm" or "chacha20"`)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log rejection diagnostics to stderr")

	root.AddCommand(keygenCmd(), sealCmd(), verifyCmd())
	return root.Execute()
}

// selectedSuite resolves the --suite and --aead flags.
func selectedSuite() (benteng.Suite, error) {
	var s benteng.Suite
	switch strings.ToLower(suiteName) {
	case "default":
		s = benteng.DefaultSuite()
	case "hybrid":
		s = benteng.HybridSuite()
	default:
		return s, fmt.Errorf("unknown suite %q", suiteName)
	}

	switch strings.ToLower(aeadName) {
	case "aes-gcm":
	case "chacha20":
		s.AEAD = "ChaCha20-Poly1305"
	default:
		return s, fmt.Errorf("unknown AEAD %q", aeadName)
	}

	return s, nil
}

// Key files hold a single base64url (unpadded) line.

func readKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return base64.RawURLEncoding.DecodeString(strings.TrimSpace(string(data)))
}

func writeKeyFile(path string, key []byte, mode os.FileMode) error {
	return os.WriteFile(path, []byte(base64.RawURLEncoding.EncodeToString(key)+"\n"), mode)
}
