// Command ssbkeys generates and uses feed identities: it signs and verifies
// values, boxes messages for several recipients and keeps named identities
// in a local keystore.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scuttlekit/ssbkeys"
	"github.com/scuttlekit/ssbkeys/internal/config"
	"github.com/scuttlekit/ssbkeys/internal/logging"
	"github.com/scuttlekit/ssbkeys/keystore"
	"github.com/scuttlekit/ssbkeys/keystore/badgerkv"
	"github.com/scuttlekit/ssbkeys/keystore/leveldbkv"
)

// Config holds the process streams and environment lookup used by run.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Logger overrides the logger built from the configuration file.
	Logger *zap.Logger
}

// DefaultConfig returns the configuration for a real process.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

var (
	errNotRecipient = errors.New("message cannot be opened with this key")
	errBadSignature = errors.New("signature does not verify")

	errVolatileKeystore = errors.New("keystore backend does not persist identities; use leveldb or badger")
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	env  Config
	conf *config.Config
	log  *zap.Logger

	configPath string
	secretPath string
	envFile    string
	name       string
}

func run(args []string, cfg Config) error {
	if cfg.Getenv == nil {
		cfg.Getenv = os.Getenv
	}
	a := &app{env: cfg}
	root := a.rootCommand()
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	return root.Execute()
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssbkeys",
		Short: "Feed identity keys, signatures and private boxes",
		Long: `ssbkeys manages Ed25519 feed identities.

Keys are read from the secret file (~/.ssb/secret by default) or, with
--name, from the configured keystore. Configuration is read from the YAML
file named by --config or SSB_KEYS_CONFIG.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&a.secretPath, "secret", "", "secret file path")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVarP(&a.name, "name", "n", "", "use the named keystore identity instead of the secret file")

	cmd.AddCommand(
		a.generateCommand(),
		a.idCommand(),
		a.signCommand(),
		a.verifyCommand(),
		a.boxCommand(),
		a.unboxCommand(),
		a.hashCommand(),
		a.storeCommand(),
	)
	return cmd
}

func (a *app) setup(*cobra.Command, []string) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.envFile, err)
		}
	}

	path := a.configPath
	if path == "" {
		path = a.env.Getenv(config.EnvConfig)
	}
	conf := config.Default()
	if path != "" {
		var err error
		if conf, err = config.Load(path); err != nil {
			return err
		}
	}
	conf.ApplyEnv(a.env.Getenv)
	if a.secretPath != "" {
		conf.Secret = a.secretPath
	}
	a.conf = conf

	if a.env.Logger != nil {
		a.log = a.env.Logger
		return nil
	}
	l, err := logging.New(conf.Logger)
	if err != nil {
		return err
	}
	a.log = l
	return nil
}

func (a *app) openKeystore() (*keystore.Keystore, error) {
	var (
		store keystore.Store
		err   error
	)
	path := a.conf.KeystorePath()
	switch a.conf.Keystore.Backend {
	case config.BackendLevelDB, config.BackendBadger:
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create keystore directory: %w", err)
		}
	}
	switch a.conf.Keystore.Backend {
	case config.BackendLevelDB:
		store, err = leveldbkv.Open(path)
	case config.BackendBadger:
		store, err = badgerkv.Open(path)
	default:
		return nil, fmt.Errorf("%w: %q", errVolatileKeystore, a.conf.Keystore.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s keystore at %s: %w", a.conf.Keystore.Backend, path, err)
	}
	return keystore.New(store, keystore.WithLogger(a.log.Named("keystore"))), nil
}

// keypair loads the identity selected by --name or the secret file.
func (a *app) keypair() (*ssbkeys.Keypair, error) {
	if a.name == "" {
		k, err := ssbkeys.LoadSecretFile(a.conf.Secret)
		if err != nil {
			return nil, err
		}
		a.log.Debug("loaded secret file", zap.String("path", a.conf.Secret), zap.String("id", k.ID))
		return k, nil
	}

	ks, err := a.openKeystore()
	if err != nil {
		return nil, err
	}
	defer ks.Close()
	return ks.Load(a.name)
}

// input returns the first argument, or all of stdin when there is none.
func input(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
