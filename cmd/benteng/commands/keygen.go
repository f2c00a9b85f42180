package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	benteng "github.com/ib823/benteng-sdk"
)

func keygenCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate KEM and signing keypairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := selectedSuite()
			if err != nil {
				return err
			}

			kem, err := benteng.GenerateKEMKeypair(suite)
			if err != nil {
				return fmt.Errorf("generate KEM keypair: %w", err)
			}
			sig, err := benteng.GenerateSigningKeypair()
			if err != nil {
				return fmt.Errorf("generate signing keypair: %w", err)
			}

			files := []struct {
				name string
				key  []byte
				mode os.FileMode
			}{
				{"kem.pk", kem.PublicKey, 0o644},
				{"kem.sk", kem.SecretKey, 0o600},
				{"sig.pk", sig.PublicKey, 0o644},
				{"sig.sk", sig.SecretKey, 0o600},
			}
			for _, f := range files {
				path := filepath.Join(outDir, f.name)
				if err := writeKeyFile(path, f.key, f.mode); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "KEM scheme:", kem.Scheme)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}
