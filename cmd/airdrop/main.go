package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arijiittt/kalp-airdrop/internal/callstate"
	"github.com/arijiittt/kalp-airdrop/internal/config"
	"github.com/arijiittt/kalp-airdrop/internal/gateway"
	"github.com/arijiittt/kalp-airdrop/internal/logger"
	"github.com/arijiittt/kalp-airdrop/internal/models"
	"github.com/arijiittt/kalp-airdrop/internal/storage"
	"github.com/arijiittt/kalp-airdrop/internal/token"
	"github.com/arijiittt/kalp-airdrop/internal/tui"
	"github.com/arijiittt/kalp-airdrop/internal/utils"
)

func runOperation(operation string, watch bool, tracker *callstate.Tracker, op func() (string, error)) {
	if watch {
		monitor := tui.NewMonitor(operation, tracker)
		if err := monitor.Run(op); err != nil {
			logger.Fatal("Failed to run %s monitor: %v", operation, err)
		}
		if tracker.Err() != nil {
			os.Exit(1)
		}
		return
	}

	result, err := op()
	if err != nil {
		logger.Fatal("Failed to %s: %v", operation, err)
	}
	fmt.Println(result)
}

func main() {
	var (
		gatewayURL   string
		contractID   string
		apiKeyHeader string
		wallet       string
		amount       int
		watch        bool
	)

	buildConfig := func() *config.Config {
		cfg := config.NewConfig()
		cfg.LoadFromEnvironment()

		if gatewayURL != "" {
			cfg.GatewayURL = gatewayURL
		}
		if contractID != "" {
			cfg.ContractID = contractID
		}
		if apiKeyHeader != "" {
			cfg.APIKeyHeader = apiKeyHeader
		}
		if wallet != "" {
			cfg.WalletAddress = wallet
		}
		if amount > 0 {
			cfg.ClaimAmount = amount
		}

		if err := cfg.Validate(); err != nil {
			logger.Fatal("Invalid configuration: %v", err)
		}

		return cfg
	}

	rootCmd := &cobra.Command{
		Use:   "kalp-airdrop",
		Short: "A CLI client for the Kalp airdrop machine contract",
		Long:  `kalp-airdrop talks to a fungible-token airdrop contract deployed behind the Kalp Studio API gateway.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if watch {
				if err := logger.InitFileOnly(); err != nil {
					logger.Init()
					logger.Warn("Falling back to console logging: %v", err)
				}
			} else {
				logger.Init()
			}
			utils.LoadEnvironment()
		},
	}

	claimCmd := &cobra.Command{
		Use:   "claim [address]",
		Short: "Claim airdrop tokens for an address",
		Long:  `Claim the configured amount of airdrop tokens for the given address, or for the configured wallet address when omitted.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := buildConfig()
			service := token.NewService(cfg, gateway.NewClient(cfg))
			tracker := callstate.NewTracker()

			address := cfg.WalletAddress
			if len(args) > 0 {
				address = args[0]
			}

			runOperation("claim", watch, tracker, func() (string, error) {
				resp, err := callstate.Track(tracker, func() (*models.Response, error) {
					return service.Claim(context.Background(), address)
				})
				if err != nil {
					return "", err
				}

				dir, dirErr := storage.DefaultDir()
				if dirErr != nil {
					logger.Warn("Skipping claim receipt: %v", dirErr)
				} else if recordErr := storage.NewStore(dir).RecordClaim(address, cfg.ClaimAmount); recordErr != nil {
					logger.Warn("Failed to record claim receipt: %v", recordErr)
				}

				return fmt.Sprintf("Claimed %d tokens for %s: %s", cfg.ClaimAmount, address, resp.Data), nil
			})
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance [account]",
		Short: "Read the token balance of an account",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := buildConfig()
			service := token.NewService(cfg, gateway.NewClient(cfg))
			tracker := callstate.NewTracker()

			account := cfg.WalletAddress
			if len(args) > 0 {
				account = args[0]
			}

			runOperation("balance", watch, tracker, func() (string, error) {
				balance, err := callstate.Track(tracker, func() (string, error) {
					amount, balanceErr := service.BalanceAmount(context.Background(), account)
					return amount.String(), balanceErr
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Balance of %s: %s", account, balance), nil
			})
		},
	}

	totalSupplyCmd := &cobra.Command{
		Use:   "total-supply",
		Short: "Read the token's total supply",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := buildConfig()
			service := token.NewService(cfg, gateway.NewClient(cfg))
			tracker := callstate.NewTracker()

			runOperation("total-supply", watch, tracker, func() (string, error) {
				supply, err := callstate.Track(tracker, func() (string, error) {
					amount, supplyErr := service.TotalSupplyAmount(context.Background())
					return amount.String(), supplyErr
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Total supply: %s", supply), nil
			})
		},
	}

	receiptsCmd := &cobra.Command{
		Use:   "receipts",
		Short: "List recorded claim receipts",
		Run: func(cmd *cobra.Command, args []string) {
			dir, err := storage.DefaultDir()
			if err != nil {
				logger.Fatal("Failed to locate data directory: %v", err)
			}

			receipts, err := storage.NewStore(dir).Load()
			if err != nil {
				logger.Fatal("Failed to load receipts: %v", err)
			}

			if len(receipts) == 0 {
				fmt.Println("No claims recorded yet")
				return
			}

			for _, receipt := range receipts {
				fmt.Printf("%s  %6d tokens  %s\n",
					time.Unix(receipt.ClaimedAt, 0).Format(time.RFC3339),
					receipt.Amount,
					receipt.Address)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration with secrets masked",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.NewConfig()
			cfg.LoadFromEnvironment()
			redacted := cfg.Redacted()

			fmt.Printf("Gateway URL:    %s\n", redacted.GatewayURL)
			fmt.Printf("Contract ID:    %s\n", redacted.ContractID)
			fmt.Printf("API key:        %s\n", redacted.APIKey)
			fmt.Printf("API key header: %s\n", redacted.APIKeyHeader)
			fmt.Printf("Network:        %s\n", redacted.Network)
			fmt.Printf("Blockchain:     %s\n", redacted.Blockchain)
			fmt.Printf("Wallet address: %s\n", redacted.WalletAddress)
			fmt.Printf("Claim amount:   %d\n", redacted.ClaimAmount)
			fmt.Printf("HTTP timeout:   %v\n", redacted.HTTPTimeout)
		},
	}

	// Add flags
	rootCmd.PersistentFlags().StringVarP(&gatewayURL, "gateway-url", "g", "", "Kalp gateway base URL")
	rootCmd.PersistentFlags().StringVarP(&contractID, "contract", "c", "", "Deployed contract ID")
	rootCmd.PersistentFlags().StringVarP(&apiKeyHeader, "api-key-header", "", "", "Header name carrying the API key (default: x-api-key)")
	rootCmd.PersistentFlags().StringVarP(&wallet, "wallet", "w", "", "Wallet address for the request envelope")
	rootCmd.PersistentFlags().IntVarP(&amount, "amount", "a", 0, "Tokens per claim (default: 100)")
	rootCmd.PersistentFlags().BoolVarP(&watch, "watch", "", false, "Render progress in a terminal UI")

	// Add subcommands
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(totalSupplyCmd)
	rootCmd.AddCommand(receiptsCmd)
	rootCmd.AddCommand(configCmd)

	defer logger.Close()

	// Execute the root command
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}
