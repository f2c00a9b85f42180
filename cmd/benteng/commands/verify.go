package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	benteng "github.com/ib823/benteng-sdk"
)

func verifyCmd() *cobra.Command {
	var (
		kemPkPath   string
		kemSkPath   string
		senderPk    string
		policyPath  string
		inPath      string
		showPayload bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the verification pipeline over an envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := selectedSuite()
			if err != nil {
				return err
			}

			kemPk, err := readKeyFile(kemPkPath)
			if err != nil {
				return fmt.Errorf("read KEM public key: %w", err)
			}
			kemSk, err := readKeyFile(kemSkPath)
			if err != nil {
				return fmt.Errorf("read KEM secret key: %w", err)
			}
			kemKeys, err := benteng.NewKEMKeypair(suite.KEM, kemPk, kemSk)
			if err != nil {
				return err
			}

			senderSigPk, err := readKeyFile(senderPk)
			if err != nil {
				return fmt.Errorf("read sender signing public key: %w", err)
			}

			store, err := loadPolicyStore(policyPath)
			if err != nil {
				return fmt.Errorf("load policy: %w", err)
			}

			opts := []benteng.VerifierOption{}
			if verbose {
				log := logrus.New()
				log.SetOutput(cmd.ErrOrStderr())
				log.SetLevel(logrus.DebugLevel)
				opts = append(opts, benteng.WithLogger(log))
			}

			verifier, err := benteng.NewVerifier(suite, store, kemKeys, senderSigPk, opts...)
			if err != nil {
				return err
			}

			frame, err := readInput(inPath)
			if err != nil {
				return fmt.Errorf("read envelope: %w", err)
			}

			plaintext, decision, err := verifier.Open(cmd.Context(), frame)
			if err != nil {
				return fmt.Errorf("indeterminate: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), decision)
			if !decision.Accepted() {
				os.Exit(1)
			}
			if showPayload {
				_, _ = cmd.OutOrStdout().Write(plaintext)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kemPkPath, "kem-pk", "", "recipient KEM public key file")
	cmd.Flags().StringVar(&kemSkPath, "kem-sk", "", "recipient KEM secret key file")
	cmd.Flags().StringVar(&senderPk, "sender-sig-pk", "", "sender signing public key file")
	cmd.Flags().StringVar(&policyPath, "policy-file", "", "policy JSON file")
	cmd.Flags().StringVarP(&inPath, "in", "i", "-", "envelope file (- for stdin)")
	cmd.Flags().BoolVar(&showPayload, "print-payload", false, "write the decrypted payload to stdout on accept")

	for _, f := range []string{"kem-pk", "kem-sk", "sender-sig-pk", "policy-file"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

// loadPolicyStore reads one JSON policy object, or an array of them, into
// an in-memory store.
func loadPolicyStore(path string) (*benteng.MemoryPolicyStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	store := benteng.NewMemoryPolicyStore()

	var policies []benteng.Policy
	if err := json.Unmarshal(data, &policies); err != nil {
		var one benteng.Policy
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, err
		}
		policies = []benteng.Policy{one}
	}

	for i := range policies {
		store.Put(&policies[i])
	}
	return store, nil
}
