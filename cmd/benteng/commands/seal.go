package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	benteng "github.com/ib823/benteng-sdk"
)

func sealCmd() *cobra.Command {
	var (
		recipientPkPath string
		signingSkPath   string
		tenant          string
		policy          string
		path            string
		inPath          string
		outPath         string
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt and sign a payload into an envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := selectedSuite()
			if err != nil {
				return err
			}

			recipientPk, err := readKeyFile(recipientPkPath)
			if err != nil {
				return fmt.Errorf("read recipient KEM public key: %w", err)
			}
			signingSk, err := readKeyFile(signingSkPath)
			if err != nil {
				return fmt.Errorf("read signing secret key: %w", err)
			}

			payload, err := readInput(inPath)
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			sealer, err := benteng.NewSealer(suite, recipientPk, signingSk)
			if err != nil {
				return err
			}

			frame, err := sealer.Seal(payload, []byte(tenant), []byte(policy), []byte(path))
			if err != nil {
				return fmt.Errorf("seal: %w", err)
			}

			if outPath == "-" {
				_, err = cmd.OutOrStdout().Write(frame)
				return err
			}
			return os.WriteFile(outPath, frame, 0o644)
		},
	}

	cmd.Flags().StringVar(&recipientPkPath, "recipient-kem-pk", "", "recipient KEM public key file")
	cmd.Flags().StringVar(&signingSkPath, "sig-sk", "", "sender signing secret key file")
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant id")
	cmd.Flags().StringVar(&policy, "policy", "", "policy id")
	cmd.Flags().StringVar(&path, "path", "", "resource path")
	cmd.Flags().StringVarP(&inPath, "in", "i", "-", "payload file (- for stdin)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "envelope.bin", "envelope output file (- for stdout)")

	for _, f := range []string{"recipient-kem-pk", "sig-sk", "tenant", "policy", "path"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
