package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SebastienDorgan/anykeys/api"
	"github.com/SebastienDorgan/anykeys/sshutils"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type loadFunc func(name string, config io.Reader, format string) (api.Provider, error)

type cli struct {
	load loadFunc
	v    *viper.Viper
}

// newRootCmd builds the command tree. load is injected so tests can bind fake providers.
func newRootCmd(load loadFunc) *cobra.Command {
	c := &cli{load: load, v: viper.New()}
	cmd := &cobra.Command{
		Use:          "anykeys",
		Short:        "Manage the SSH key pairs of a compute provider",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			if c.v.GetBool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().String("config", "", "provider configuration file (json, yaml or toml)")
	cmd.PersistentFlags().String("provider", "openstack", "provider name (openstack, rackspace, hpcloud, aws)")
	cmd.PersistentFlags().Bool("debug", false, "log provider requests")
	_ = c.v.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = c.v.BindPFlag("provider", cmd.PersistentFlags().Lookup("provider"))
	_ = c.v.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	c.v.SetEnvPrefix("ANYKEYS")
	c.v.AutomaticEnv()

	cmd.AddCommand(
		c.listCmd(),
		c.getCmd(),
		c.fingerprintCmd(),
		c.createCmd(),
		c.importCmd(),
		c.deleteCmd(),
		c.capabilitiesCmd(),
	)
	return cmd
}

func (c *cli) manager() (api.KeyPairManager, error) {
	path := c.v.GetString("config")
	if path == "" {
		return nil, errors.New("a provider configuration is required (--config or ANYKEYS_CONFIG)")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "Error opening provider configuration")
	}
	defer f.Close()
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = "json"
	}
	p, err := c.load(c.v.GetString("provider"), f, format)
	if err != nil {
		return nil, err
	}
	return p.GetKeyPairManager(), nil
}

func printKeyPairs(out io.Writer, keypairs ...api.KeyPair) {
	table := uitable.New()
	table.MaxColWidth = 64
	table.AddRow("ID", "NAME", "FINGERPRINT", "REGION")
	for _, kp := range keypairs {
		table.AddRow(kp.ID, kp.Name, kp.Fingerprint, kp.RegionID)
	}
	fmt.Fprintln(out, table)
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List key pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager()
			if err != nil {
				return err
			}
			keypairs, err := mgr.List()
			if err != nil {
				return err
			}
			printKeyPairs(cmd.OutOrStdout(), keypairs...)
			return nil
		},
	}
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager()
			if err != nil {
				return err
			}
			kp, err := mgr.Get(args[0])
			if err != nil {
				return err
			}
			if kp == nil {
				return api.NewNotFoundError("key pair", args[0])
			}
			printKeyPairs(cmd.OutOrStdout(), *kp)
			return nil
		},
	}
}

func (c *cli) fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <id>",
		Short: "Print the fingerprint of a key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager()
			if err != nil {
				return err
			}
			fp, err := mgr.GetFingerprint(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fp)
			return nil
		},
	}
}

func (c *cli) createCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Let the provider generate a key pair",
		Long: `Let the provider generate a key pair.
The private key is only available at creation time. It is written to the
file given by --out, or to the standard output when --out is not set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager()
			if err != nil {
				return err
			}
			kp, err := mgr.Create(args[0])
			if err != nil {
				return err
			}
			printKeyPairs(cmd.OutOrStdout(), *kp)
			if kp.PrivateKey == "" {
				return nil
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), kp.PrivateKey)
				return nil
			}
			return sshutils.WritePrivateKey(out, kp.PrivateKey)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file receiving the private key")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <public key file>",
		Short: "Import a public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return errors.Wrap(err, "Error opening public key")
			}
			defer f.Close()
			publicKey, err := sshutils.ReadPublicKey(f)
			if err != nil {
				return err
			}
			mgr, err := c.manager()
			if err != nil {
				return err
			}
			kp, err := mgr.Import(args[0], publicKey)
			if err != nil {
				return err
			}
			printKeyPairs(cmd.OutOrStdout(), *kp)
			return nil
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager()
			if err != nil {
				return err
			}
			return mgr.Delete(args[0])
		},
	}
}

func (c *cli) capabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show the key pair capabilities of the provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager()
			if err != nil {
				return err
			}
			caps := mgr.Capabilities()
			table := uitable.New()
			table.AddRow("FLAVOR", caps.Flavor)
			table.AddRow("RELEASE", caps.Release)
			table.AddRow("SUBSCRIBED", mgr.IsSubscribed())
			table.AddRow("IMPORT", caps.Import)
			table.AddRow("ID FIELDS", strings.Join(caps.IDFields, ","))
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
