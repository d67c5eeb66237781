package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scuttlekit/ssbkeys"
)

func (a *app) generateCommand() *cobra.Command {
	var write, legacy bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new identity",
		Long: `Generate a new Ed25519 identity.

Without --write the key text is printed. With --write it is stored in the
secret file, which must not exist yet, and only the public id is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !write {
				k, err := ssbkeys.Generate()
				if err != nil {
					return err
				}
				defer k.Zero()
				text, err := ssbkeys.EncodeKeypair(k)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}

			k, err := ssbkeys.CreateSecretFile(a.conf.Secret, legacy)
			if err != nil {
				return err
			}
			defer k.Zero()
			a.log.Info("created secret file", zap.String("path", a.conf.Secret), zap.String("id", k.ID))
			fmt.Fprintln(cmd.OutOrStdout(), k.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the identity to the secret file")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "store only the private key in the secret file")
	return cmd
}

func (a *app) idCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Print the public id of the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := a.keypair()
			if err != nil {
				return err
			}
			defer k.Zero()
			fmt.Fprintln(cmd.OutOrStdout(), k.ID)
			return nil
		},
	}
}
