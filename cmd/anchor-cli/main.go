package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchor"
	"github.com/hashgraph-online/anchor-sdk-go/pkg/anchorstore"
	"github.com/hashgraph-online/anchor-sdk-go/pkg/attestor"
)

var longHelp = strings.TrimSpace(`
anchor-cli batches attestation records, fits each batch under the
network's per-transaction gas ceiling, and anchors a rolling chain
commitment to the Anchor contract on the Hedera public ledger.

A typical run: slice records into a persisted collection, publish it
slice by slice, and verify the final on-ledger commitment. Interrupted
runs resume from the ledger's current commitment without resubmitting
committed entries.
`)

func main() {
	config := defaultConfig()
	var configPath string
	var logLevel string
	var flagNetwork string
	var flagMirrorURL string
	var flagContract string
	var flagMaxGas uint64
	var flagStore string

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "anchor-cli",
		Short:         "Anchor attestation batches to the Hedera ledger",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if err := loadConfigFile(configPath, &config); err != nil {
				return err
			}

			// Flags beat config file values when given explicitly.
			flagSet := command.Flags()
			if flagSet.Changed("network") {
				config.Network = flagNetwork
			}
			if flagSet.Changed("mirror-url") {
				config.MirrorBaseURL = flagMirrorURL
			}
			if flagSet.Changed("contract") {
				config.ContractID = flagContract
			}
			if flagSet.Changed("max-gas") {
				config.MaxGas = flagMaxGas
			}
			if flagSet.Changed("store") {
				config.StorePath = flagStore
			}
			fillOperatorFromEnv(&config)

			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			logger = logger.Level(level)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a TOML config file")
	flags.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&flagNetwork, "network", config.Network, "hedera network (mainnet, testnet, previewnet)")
	flags.StringVar(&flagMirrorURL, "mirror-url", "", "mirror node base URL override")
	flags.StringVar(&flagContract, "contract", "", "anchor contract ID override")
	flags.Uint64Var(&flagMaxGas, "max-gas", 0, "per-transaction gas ceiling override")
	flags.StringVar(&flagStore, "store", "", "path for the persisted sliced collection")

	root.AddCommand(newSliceCommand(&config, &logger))
	root.AddCommand(newPublishCommand(&config, &logger))
	root.AddCommand(newResumeCommand(&config, &logger))
	root.AddCommand(newVerifyCommand(&config, &logger))
	root.AddCommand(newStatusCommand(&config, &logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newAttestorClient(config *cliConfig) (*attestor.Client, error) {
	return attestor.NewClient(attestor.ClientConfig{
		OperatorAccountID:    config.Operator.AccountID,
		OperatorPrivateKey:   config.Operator.PrivateKey,
		Network:              config.Network,
		MirrorBaseURL:        config.MirrorBaseURL,
		MirrorAPIKey:         config.MirrorAPIKey,
		ContractID:           config.ContractID,
		MaxGasPerTransaction: config.MaxGas,
		StorePath:            config.StorePath,
	})
}

func packRecordsFile(path string) ([]anchor.Batch, error) {
	records, err := loadRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records in %s", path)
	}
	return anchor.Pack(records)
}

func newSliceCommand(config *cliConfig, logger *zerolog.Logger) *cobra.Command {
	var recordsPath string
	var outPath string

	command := &cobra.Command{
		Use:   "slice",
		Short: "Pack records and slice them under the gas ceiling",
		RunE: func(command *cobra.Command, arguments []string) error {
			batches, err := packRecordsFile(recordsPath)
			if err != nil {
				return err
			}

			client, err := newAttestorClient(config)
			if err != nil {
				return err
			}
			client.SetLogger(*logger)

			estimator := client.Estimator()
			sliced := make([]anchor.Batch, 0, len(batches))
			for _, batch := range batches {
				slices, sliceErr := anchor.Slice(command.Context(), batch, estimator, client.Ceiling())
				if sliceErr != nil {
					return sliceErr
				}
				sliced = append(sliced, slices...)
			}

			if err := anchorstore.Save(outPath, sliced); err != nil {
				return err
			}
			logger.Info().
				Int("batches", len(batches)).
				Int("slices", len(sliced)).
				Str("out", outPath).
				Msg("collection sliced")
			return nil
		},
	}

	command.Flags().StringVar(&recordsPath, "records", "", "JSON-lines records file")
	command.Flags().StringVar(&outPath, "out", "collection.anchor", "output collection path")
	command.MarkFlagRequired("records")
	return command
}

func newPublishCommand(config *cliConfig, logger *zerolog.Logger) *cobra.Command {
	var recordsPath string
	var collectionPath string
	var memo string

	command := &cobra.Command{
		Use:   "publish",
		Short: "Publish a record set, resuming any interrupted run",
		RunE: func(command *cobra.Command, arguments []string) error {
			var batches []anchor.Batch
			var err error
			switch {
			case collectionPath != "":
				batches, err = anchorstore.Load(collectionPath)
			case recordsPath != "":
				batches, err = packRecordsFile(recordsPath)
			default:
				return fmt.Errorf("either --records or --collection is required")
			}
			if err != nil {
				return err
			}

			client, err := newAttestorClient(config)
			if err != nil {
				return err
			}
			client.SetLogger(*logger)

			result, err := client.Publish(command.Context(), batches, attestor.PublishOptions{
				TransactionMemo: memo,
			})
			if err != nil {
				return err
			}

			logger.Info().
				Str("job", result.JobID).
				Int("slices", result.SlicesSubmitted).
				Int("entries", result.EntriesSubmitted).
				Str("commitment", result.FinalCommitment.Hex()).
				Bool("resumed", result.ResumedFromLedger).
				Msg("publication complete")
			return nil
		},
	}

	command.Flags().StringVar(&recordsPath, "records", "", "JSON-lines records file")
	command.Flags().StringVar(&collectionPath, "collection", "", "persisted collection file")
	command.Flags().StringVar(&memo, "memo", "", "transaction memo")
	return command
}

func newResumeCommand(config *cliConfig, logger *zerolog.Logger) *cobra.Command {
	var collectionPath string

	command := &cobra.Command{
		Use:   "resume",
		Short: "Show what an interrupted publication still has to submit",
		RunE: func(command *cobra.Command, arguments []string) error {
			batches, err := anchorstore.Load(collectionPath)
			if err != nil {
				return err
			}

			client, err := newAttestorClient(config)
			if err != nil {
				return err
			}

			plan, err := client.Resume(command.Context(), batches)
			if err != nil {
				return err
			}

			remaining := len(anchor.Flatten(plan.Remainder))
			switch {
			case plan.FreshStart && remaining > 0:
				logger.Info().Int("entries", remaining).Msg("nothing published yet, start fresh")
			case remaining == 0:
				logger.Info().Str("commitment", plan.LedgerCommitment.Hex()).Msg("collection fully anchored")
			default:
				logger.Info().
					Str("commitment", plan.LedgerCommitment.Hex()).
					Int("entries", remaining).
					Msg("publication can resume")
			}
			return nil
		},
	}

	command.Flags().StringVar(&collectionPath, "collection", "collection.anchor", "persisted collection file")
	return command
}

func newVerifyCommand(config *cliConfig, logger *zerolog.Logger) *cobra.Command {
	var collectionPath string
	var commitmentHex string

	command := &cobra.Command{
		Use:   "verify",
		Short: "Verify a commitment against a persisted collection",
		RunE: func(command *cobra.Command, arguments []string) error {
			batches, err := anchorstore.Load(collectionPath)
			if err != nil {
				return err
			}

			var verified bool
			var target anchor.Commitment
			if commitmentHex != "" {
				// Offline verification against a claimed commitment.
				target, err = anchor.CommitmentFromHex(commitmentHex)
				if err != nil {
					return err
				}
				verified = anchor.Verify(target, batches)
			} else {
				client, clientErr := newAttestorClient(config)
				if clientErr != nil {
					return clientErr
				}
				target, err = client.CurrentCommitment(command.Context())
				if err != nil {
					return err
				}
				verified = anchor.Verify(target, batches)
			}

			if !verified {
				return fmt.Errorf("commitment %s does not match the collection", target.Hex())
			}
			logger.Info().Str("commitment", target.Hex()).Msg("collection verified")
			return nil
		},
	}

	command.Flags().StringVar(&collectionPath, "collection", "collection.anchor", "persisted collection file")
	command.Flags().StringVar(&commitmentHex, "commitment", "", "verify against this commitment instead of the ledger")
	return command
}

func newStatusCommand(config *cliConfig, logger *zerolog.Logger) *cobra.Command {
	command := &cobra.Command{
		Use:   "status",
		Short: "Show the contract's current on-ledger commitment",
		RunE: func(command *cobra.Command, arguments []string) error {
			client, err := newAttestorClient(config)
			if err != nil {
				return err
			}

			commitment, err := client.CurrentCommitment(command.Context())
			if err != nil {
				return err
			}

			if commitment.IsGenesis() {
				logger.Info().Msg("nothing committed yet")
			} else {
				logger.Info().Str("commitment", commitment.Hex()).Msg("current commitment")
			}
			return nil
		},
	}
	return command
}
